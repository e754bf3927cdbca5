package domains

import "strings"

// Draft is the in-progress form: a domain name, its record text and
// whether an owned domain is being edited rather than minted.
type Draft struct {
	Name    string
	Record  string
	Editing bool
}

// ValidateName rejects an empty domain name
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	return nil
}

// ValidateMint checks the draft can be minted
func (d Draft) ValidateMint() error {
	return ValidateName(d.Name)
}

// ValidateUpdate checks the draft can update an existing record
func (d Draft) ValidateUpdate() error {
	if err := ValidateName(d.Name); err != nil {
		return err
	}
	if d.Record == "" {
		return ErrEmptyRecord
	}
	return nil
}

// Edit seeds the draft with an owned domain and switches to editing
func (d *Draft) Edit(name string) {
	d.Name = name
	d.Editing = true
}

// Cancel leaves editing mode, keeping what was typed
func (d *Draft) Cancel() {
	d.Editing = false
}

// Clear empties name and record after a successful write
func (d *Draft) Clear() {
	d.Name = ""
	d.Record = ""
}
