package main

import (
	"context"
	"errors"
	"math/big"
	"os"
	"strings"
	"time"

	"bns-tui/domains"
	"bns-tui/rpc"
	"bns-tui/scripts"
	"bns-tui/wallet"

	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultArtifact = "artifacts/contracts/Domains.sol/Domains.json"

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("BNS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:           "bnsctl",
		Short:         "Deploy and exercise the Brotherhood Name Service registry",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("rpc", "http://127.0.0.1:8545", "JSON-RPC endpoint of the development node")
	flags.String("key", "", "hex private key of the deployer (env BNS_KEY or BNS_PRIVATE_KEY)")
	flags.String("second-key", "", "hex private key of the account that tries to withdraw")
	flags.String("artifact", defaultArtifact, "Hardhat artifact of the Domains contract")
	flags.String("tld", "ac", "top level domain passed to the constructor")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.Duration("timeout", 5*time.Minute, "overall deadline for the flow")
	if err := v.BindPFlags(flags); err != nil {
		panic(err)
	}
	_ = v.BindEnv("key", "BNS_KEY", "BNS_PRIVATE_KEY")

	rootCmd.AddCommand(createDeployCmd(v))
	rootCmd.AddCommand(createRunCmd(v))
	return rootCmd
}

func createDeployCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the registry, mint ezio and set its record",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), v, false, func(ctx context.Context, env scripts.Env) error {
				_, err := scripts.Deploy(ctx, env)
				return err
			})
		},
	}
}

func createRunCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Deploy a registry and check that only the owner can withdraw",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), v, true, func(ctx context.Context, env scripts.Env) error {
				rep, err := scripts.Run(ctx, env)
				if err != nil {
					return err
				}
				if !rep.RobFailed {
					return errors.New("a non-owner withdrew the contract balance")
				}
				return nil
			})
		},
	}
}

func newLogger(level string) (*log.Logger, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "bnsctl",
	})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(lvl)
	return logger, nil
}

// withEnv dials the node, loads keys and the artifact, then runs fn
func withEnv(parent context.Context, v *viper.Viper, needSecond bool, fn func(context.Context, scripts.Env) error) error {
	logger, err := newLogger(v.GetString("log-level"))
	if err != nil {
		return err
	}
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, v.GetDuration("timeout"))
	defer cancel()

	res := rpc.Connect(v.GetString("rpc"))
	if res.Error != nil {
		logger.Error("connect", "rpc", v.GetString("rpc"), "err", res.Error)
		return res.Error
	}
	client := res.Client
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		logger.Error("chain id", "err", err)
		return err
	}
	logger.Debug("connected", "rpc", client.URL, "chain", chainID)

	owner, err := transactor(v.GetString("key"), chainID)
	if err != nil {
		logger.Error("deployer key", "err", err)
		return err
	}
	env := scripts.Env{
		Chain:  client,
		Owner:  owner,
		TLD:    strings.TrimPrefix(v.GetString("tld"), "."),
		Logger: logger,
	}

	if needSecond {
		if env.Other, err = transactor(v.GetString("second-key"), chainID); err != nil {
			logger.Error("second key", "err", err)
			return err
		}
	}

	if env.Artifact, err = domains.LoadArtifact(v.GetString("artifact")); err != nil {
		logger.Error("artifact", "path", v.GetString("artifact"), "err", err)
		return err
	}

	if err := fn(ctx, env); err != nil {
		logger.Error("flow failed", "err", err)
		return err
	}
	return nil
}

func transactor(hexKey string, chainID *big.Int) (*bind.TransactOpts, error) {
	if strings.TrimSpace(hexKey) == "" {
		return nil, errors.New("no key given")
	}
	key, err := wallet.LoadKey(hexKey, "", "")
	if err != nil {
		return nil, err
	}
	return bind.NewKeyedTransactorWithChainID(key, chainID)
}
