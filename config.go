/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Seednode/triviabox/games"
)

type Config struct {
	bind           string
	feedbackDelay  time.Duration
	pelimojisTurns string
	players        int
	poolDir        string
	port           int
	prefix         string
	profile        bool
	seed           uint64
	sessionTimeout time.Duration
	tlsCert        string
	tlsKey         string
	trustProxy     bool
	verbose        bool
	version        bool
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.feedbackDelay <= 0 || c.feedbackDelay > time.Minute {
		return fmt.Errorf("invalid feedback delay (must be between 0 and 1m): %s", c.feedbackDelay)
	}
	if c.sessionTimeout < 0 {
		return fmt.Errorf("invalid session timeout: %s", c.sessionTimeout)
	}
	if _, err := games.ParsePolicy(c.pelimojisTurns); err != nil {
		return fmt.Errorf("invalid --pelimojis-turns: %w", err)
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

// bindEnv seeds every flag in fs from TRIVIABOX_<FLAG>. Command line values
// are parsed later and win.
func bindEnv(v *viper.Viper, fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})
}

func normalize(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("TRIVIABOX")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "triviabox",
		Short:         "Hot-seat trivia minigames, served as a single webapp.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return ServePage(cmd.Context(), cfg)
		},
	}

	fs := cmd.PersistentFlags()

	fs.SetNormalizeFunc(normalize)

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: TRIVIABOX_BIND)")
	fs.DurationVar(&cfg.feedbackDelay, "feedback-delay", 3*time.Second, "time before round feedback moves out of the way (env: TRIVIABOX_FEEDBACK_DELAY)")
	fs.StringVar(&cfg.pelimojisTurns, "pelimojis-turns", "miss", "when pelimojis passes the turn: miss, hit or always (env: TRIVIABOX_PELIMOJIS_TURNS)")
	fs.StringVar(&cfg.poolDir, "pool-dir", "", "directory of dataset files overriding the built-in ones (env: TRIVIABOX_POOL_DIR)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: TRIVIABOX_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: TRIVIABOX_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: TRIVIABOX_PROFILE)")
	fs.Uint64Var(&cfg.seed, "seed", 0, "random seed for round selection, 0 for time-based (env: TRIVIABOX_SEED)")
	fs.DurationVar(&cfg.sessionTimeout, "session-timeout", 60*time.Minute, "time before an idle game screen is disconnected (env: TRIVIABOX_SESSION_TIMEOUT)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: TRIVIABOX_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: TRIVIABOX_TLS_KEY)")
	fs.BoolVar(&cfg.trustProxy, "trust-proxy", false, "honor X-Forwarded-Proto from a reverse proxy (env: TRIVIABOX_TRUST_PROXY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: TRIVIABOX_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: TRIVIABOX_VERSION)")

	bindEnv(v, fs)

	cmd.AddCommand(newPlayCmd(cfg, v))

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("triviabox v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}

func newPlayCmd(cfg *Config, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "play <game>",
		Short:     "Play a game in the terminal.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{games.AgeGameID, games.ChronologyGameID, games.MatchGameID},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			if cfg.players < games.MinPlayers || cfg.players > games.MaxPlayers {
				return fmt.Errorf("invalid player count (must be between %d-%d inclusive): %d", games.MinPlayers, games.MaxPlayers, cfg.players)
			}
			return PlayTerminal(cfg, args[0])
		},
	}

	fs := cmd.Flags()
	fs.SetNormalizeFunc(normalize)
	fs.IntVar(&cfg.players, "players", 2, "number of players sharing the terminal (env: TRIVIABOX_PLAYERS)")

	bindEnv(v, fs)

	return cmd
}
