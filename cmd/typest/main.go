// Package main provides the CLI entrypoint for typest.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Phantom-J-A-T/Type-speed-tester/internal/bank"
	"github.com/Phantom-J-A-T/Type-speed-tester/internal/config"
	"github.com/Phantom-J-A-T/Type-speed-tester/internal/model"
	"github.com/Phantom-J-A-T/Type-speed-tester/internal/session"
	"github.com/Phantom-J-A-T/Type-speed-tester/internal/tui"
)

const (
	defaultDifficulty = "EASY"
	defaultTheme      = "light"
)

var (
	practiceDifficulty string
	practiceTheme      string
	practiceSentences  string

	sentencesForce bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typest",
		Short:         "Terminal typing speed test",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceDifficulty, "difficulty", defaultDifficulty, "sentence tier: easy, medium, or hard")
	rootCmd.Flags().StringVar(&practiceTheme, "theme", defaultTheme, "color scheme: light or dark")
	rootCmd.Flags().StringVar(&practiceSentences, "sentences", "", "path to a sentence bank file")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSentencesCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "difficulty", &practiceDifficulty, fileCfg.Practice.Difficulty)
	applyStringConfig(cmd, "theme", &practiceTheme, fileCfg.Practice.Theme)
	applyStringConfig(cmd, "sentences", &practiceSentences, fileCfg.Practice.Sentences)

	difficulty, err := model.ParseDifficulty(practiceDifficulty)
	if err != nil {
		return err
	}
	theme, err := tui.ThemeByName(practiceTheme)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdout is not a terminal; typest needs an interactive terminal")
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	sentences, err := openBank(practiceSentences, rnd)
	if err != nil {
		return err
	}

	ctrl, err := session.New(sentences, difficulty)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	program := tea.NewProgram(tui.NewModel(ctrl, theme), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// openBank loads the sentence bank. An explicitly requested file must
// exist; with no explicit path, a bank at the default location is used
// when present and the embedded bank otherwise.
func openBank(path string, rnd *rand.Rand) (*bank.Bank, error) {
	if path != "" {
		b, err := bank.Load(path, rnd)
		if err != nil {
			return nil, sentenceBankError(path, err)
		}
		return b, nil
	}
	defaultPath := config.DefaultSentencesPath()
	if _, err := os.Stat(defaultPath); err == nil {
		b, err := bank.Load(defaultPath, rnd)
		if err != nil {
			return nil, sentenceBankError(defaultPath, err)
		}
		return b, nil
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat sentence bank: %w", err)
	}
	return bank.Default(rnd)
}

func sentenceBankError(path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load sentence bank: %v", err),
		fmt.Sprintf("sentence bank path: %s", path),
		"Create a default bank with: typest sentences init",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newSentencesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sentences",
		Short: "Manage the sentence bank",
	}
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the built-in sentence bank for editing",
		Args:  cobra.NoArgs,
		RunE:  runSentencesInitCmd,
	}
	initCmd.Flags().BoolVar(&sentencesForce, "force", false, "overwrite an existing file")
	cmd.AddCommand(initCmd)
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show sentence counts per difficulty tier",
		Args:  cobra.NoArgs,
		RunE:  runSentencesListCmd,
	})
	return cmd
}

func runSentencesInitCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultSentencesPath()
	if !sentencesForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("sentence bank already exists: %s (use --force to overwrite)", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat sentence bank: %w", err)
		}
	}
	if err := bank.WriteDefault(path); err != nil {
		return err
	}
	logErrf("Wrote %s\n", path)
	return nil
}

func runSentencesListCmd(cmd *cobra.Command, _ []string) error {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	b, err := openBank(practiceSentences, rnd)
	if err != nil {
		return err
	}
	counts := b.Counts()
	tiers := make([]string, 0, len(counts))
	for d := range counts {
		tiers = append(tiers, string(d))
	}
	sort.Strings(tiers)
	for _, tier := range tiers {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", tier, counts[model.Difficulty(tier)]); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typest configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# difficulty = %q   # Sentence tier: easy, medium, or hard
# theme = %q        # Color scheme: light or dark
# sentences = ""       # Path to a custom sentence bank file
`,
		strings.ToLower(defaultDifficulty),
		defaultTheme,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
