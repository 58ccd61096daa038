package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/risclient/internal/cliconfig"
	"github.com/bft-labs/risclient/pkg/log"
	"github.com/bft-labs/risclient/pkg/ris"
)

const helpDescription = `
Send a single fraud-risk scoring request to a RIS endpoint and print the reply.

Highlights:
  - Certificate (PKCS12 + pass phrase) or API-key authentication.
  - Client-side validation before anything touches the network.
  - Configure via flags, config file ($HOME/.risq/config.toml), .env, or RISQ_* env vars.
`

var exampleUsage = strings.TrimSpace(`
  risq --api-key-file /run/secrets/ris.key --merchant 123456 --session 0a1b2c3d --total 10900 --currency USD --ip 203.0.113.7
  risq --p12-file merchant.p12 --p12-passphrase "$PHRASE" --mode U --tran TR019 --merchant 123456 --session 0a1b2c3d
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

type requestFlags struct {
	merchant    string
	session     string
	site        string
	total       int64
	currency    string
	ip          string
	email       string
	phone       string
	paymentType string
	authStatus  string
	tran        string
	noMack      bool
	keepOpen    bool
	fields      []string
}

func main() {
	// A local .env is convenience only; absence is not an error.
	_ = godotenv.Load()

	cfg := cliconfig.DefaultConfig()
	var cfgPath string
	var rf requestFlags

	root := &cobra.Command{
		Use:     "risq",
		Short:   "Send a fraud-risk scoring request to a RIS endpoint",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Precedence: flags > config file > env > defaults.
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}
			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return fmt.Errorf("apply config: %w", err)
				}
			}
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return fmt.Errorf("apply env: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			level, err := zerolog.ParseLevel(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q", cfg.LogLevel)
			}
			logger := log.NewConsole(level)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg, rf, logger)
		},
	}

	flags := root.Flags()
	flags.StringVar(&cfgPath, "config", "", "path to config file (default $HOME/.risq/config.toml)")
	flags.StringVar(&cfg.ServiceURL, "url", cfg.ServiceURL, "RIS endpoint URL")
	flags.StringVar(&cfg.APIKey, "api-key", cfg.APIKey, "API key value")
	flags.StringVar(&cfg.APIKeyFile, "api-key-file", cfg.APIKeyFile, "path to API key file")
	flags.StringVar(&cfg.P12File, "p12-file", cfg.P12File, "path to PKCS12 key container")
	flags.StringVar(&cfg.P12Passphrase, "p12-passphrase", cfg.P12Passphrase, "pass phrase for the key container")
	flags.DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "HTTP request timeout")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (trace, debug, info, warn, error)")
	flags.StringVar(&cfg.Mode, "mode", cfg.Mode, "request mode: Q, P, U, or X")

	flags.StringVar(&rf.merchant, "merchant", "", "six-digit merchant id (MERC)")
	flags.StringVar(&rf.session, "session", "", "session id (SESS)")
	flags.StringVar(&rf.site, "site", "DEFAULT", "website id (SITE)")
	flags.Int64Var(&rf.total, "total", 0, "order total in lowest denomination (TOTL)")
	flags.StringVar(&rf.currency, "currency", "", "ISO 4217 currency code (CURR)")
	flags.StringVar(&rf.ip, "ip", "", "customer IP address (IPAD)")
	flags.StringVar(&rf.email, "email", "", "customer email (EMAL)")
	flags.StringVar(&rf.phone, "phone", "", "phone number for mode P (ANID)")
	flags.StringVar(&rf.paymentType, "payment-type", "CARD", "payment type code (PTYP)")
	flags.StringVar(&rf.authStatus, "auth", "", "payment authorization status, A or D (AUTH)")
	flags.StringVar(&rf.tran, "tran", "", "transaction id for update modes (TRAN)")
	flags.BoolVar(&rf.noMack, "no-mack", false, "send MACK=N instead of MACK=Y")
	flags.BoolVar(&rf.keepOpen, "keep-open", false, "leave the reply stream open (debugging)")
	flags.StringArrayVar(&rf.fields, "field", nil, "extra raw field as KEY=VALUE (repeatable)")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg cliconfig.Config, rf requestFlags, logger log.Logger) error {
	client, err := buildClient(cfg, logger)
	if err != nil {
		return err
	}

	req, err := buildRequest(cfg.Mode, rf)
	if err != nil {
		return err
	}

	resp, err := client.Process(ctx, req)
	if err != nil {
		var verr *ris.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintln(os.Stderr, "request failed validation:")
			for _, fe := range verr.Fields {
				fmt.Fprintf(os.Stderr, "  %s\n", fe)
			}
			return errors.New("validation failed")
		}
		return err
	}

	printResponse(resp, logger)
	return nil
}

func buildClient(cfg cliconfig.Config, logger log.Logger) (*ris.Client, error) {
	opts := []ris.Option{ris.WithLogger(logger)}
	switch {
	case cfg.P12File != "":
		return ris.NewCertClient(cfg.P12Passphrase, cfg.ServiceURL, cfg.P12File, opts...)
	case cfg.APIKeyFile != "":
		return ris.NewKeyClientFromFile(cfg.ServiceURL, cfg.APIKeyFile, opts...)
	default:
		return ris.NewKeyClient(cfg.ServiceURL, cfg.APIKey, opts...), nil
	}
}

func buildRequest(mode string, rf requestFlags) (*ris.Request, error) {
	req := ris.NewInquiry()
	req.SetMode(ris.Mode(mode))
	req.CloseOnFinish = !rf.keepOpen

	if rf.merchant != "" {
		req.SetMerchant(rf.merchant)
	}
	if rf.session != "" {
		req.SetSession(rf.session)
	}
	if rf.site != "" {
		req.SetSite(rf.site)
	}
	if rf.total != 0 {
		req.SetTotal(rf.total)
	}
	if rf.currency != "" {
		req.SetCurrency(rf.currency)
	}
	if rf.ip != "" {
		req.SetIPAddress(rf.ip)
	}
	if rf.email != "" {
		req.SetEmail(rf.email)
	}
	if rf.phone != "" {
		req.SetPhone(rf.phone)
	}
	if rf.paymentType != "" {
		req.SetPaymentType(rf.paymentType)
	}
	if rf.authStatus != "" {
		req.SetAuthStatus(rf.authStatus)
	}
	if rf.tran != "" {
		req.SetTransactionID(rf.tran)
	}
	req.SetMerchantAck(!rf.noMack)

	for _, f := range rf.fields {
		key, value, ok := strings.Cut(f, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --field %q, want KEY=VALUE", f)
		}
		req.Set(key, value)
	}

	return req, nil
}

func printResponse(resp *ris.Response, logger log.Logger) {
	fields := resp.Fields()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s=%s\n", k, fields[k])
	}

	if resp.IsError() {
		logger.Error("service returned an error reply",
			log.Str("code", resp.ErrorCode()),
			log.Int("errors", len(resp.Errors())))
		return
	}
	if decision, ok := resp.Decision(); ok {
		score, _ := resp.Score()
		logger.Info("scored",
			log.Str("decision", string(decision)),
			log.Int("score", score),
			log.Str("tran", resp.TransactionID()))
	}
}
