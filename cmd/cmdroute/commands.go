package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kalambet/cmdroute/internal/config"
	"github.com/kalambet/cmdroute/internal/domain"
	"github.com/kalambet/cmdroute/internal/intent"
	"github.com/kalambet/cmdroute/internal/pipeline"
	"github.com/kalambet/cmdroute/internal/profile"
	"github.com/kalambet/cmdroute/internal/simulation"
	"github.com/kalambet/cmdroute/internal/storage"
)

// newRouter builds a router, opening the transcript store when record is set.
// The returned cleanup func is always non-nil.
func newRouter(cmd *cobra.Command, record bool) (*pipeline.Router, func(), error) {
	if !record {
		return pipeline.NewRouter(nil), func() {}, nil
	}
	store, err := storage.Open(appConfig.Storage.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening storage: %w", err)
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			printWarning(cmd.ErrOrStderr(), "closing storage: %v", err)
		}
	}
	return pipeline.NewRouter(store), cleanup, nil
}

// --- simulate ---

type simulateOptions struct {
	rounds int
	seed   int
	roster string
	record bool
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run random sessions for the sample users",
	Long: `Run random sessions for the sample users.

Examples:
  cmdroute simulate
  cmdroute simulate --rounds 5 --seed 42
  cmdroute simulate --roster ./users.yaml --record`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := simulateOptions{
			rounds: appConfig.Simulation.Rounds,
			seed:   appConfig.Simulation.Seed,
			roster: appConfig.Simulation.Roster,
			record: appConfig.Storage.Record,
		}
		if cmd.Flags().Changed("rounds") {
			opts.rounds, _ = cmd.Flags().GetInt("rounds")
		}
		if cmd.Flags().Changed("seed") {
			opts.seed, _ = cmd.Flags().GetInt("seed")
		}
		if cmd.Flags().Changed("roster") {
			opts.roster, _ = cmd.Flags().GetString("roster")
		}
		if cmd.Flags().Changed("record") {
			opts.record, _ = cmd.Flags().GetBool("record")
		}
		if opts.rounds <= 0 {
			return fmt.Errorf("--rounds must be positive")
		}
		return runSimulate(cmd, opts)
	},
}

func init() {
	simulateCmd.Flags().Int("rounds", 3, "utterances per user")
	simulateCmd.Flags().Int("seed", 0, "random seed (0 = random)")
	simulateCmd.Flags().String("roster", "", "YAML file with users and utterances")
	simulateCmd.Flags().Bool("record", false, "store each interaction in the transcript database")
}

func runSimulate(cmd *cobra.Command, opts simulateOptions) error {
	alice, err := domain.NewUserProfile("Alice", 30, map[string]any{"genre": "jazz", "goal": "strength"}, true)
	if err != nil {
		return err
	}
	bob, err := domain.NewUserProfile("Bob", 22, map[string]any{"genre": "rock", "goal": "endurance"}, false)
	if err != nil {
		return err
	}
	cara, err := domain.NewUserProfile("Cara", 27, map[string]any{"genre": "classical", "goal": "flexibility"}, true)
	if err != nil {
		return err
	}
	users := []domain.UserProfile{alice, bob, cara}
	utterances := []string{
		"Hey, play some music for me",
		"I want a strength workout routine",
		"Can you help me study OOP concepts?",
		"Give me a pop playlist",
		"Suggest an endurance exercise plan",
		"Explain polymorphism in simple terms",
	}

	if opts.roster != "" {
		r, err := profile.LoadRoster(opts.roster)
		if err != nil {
			return err
		}
		users = r.Users
		if len(r.Utterances) > 0 {
			utterances = r.Utterances
		}
	}

	router, cleanup, err := newRouter(cmd, opts.record)
	if err != nil {
		return err
	}
	defer cleanup()

	sim := simulation.New(router, cmd.OutOrStdout(), simulation.NewRand(uint64(opts.seed)), opts.rounds)
	return sim.Run(cmd.Context(), users, utterances)
}

// --- ask ---

var askCmd = &cobra.Command{
	Use:   "ask <utterance>",
	Short: "Route a single utterance for one user",
	Long: `Route a single utterance for one user.

Examples:
  cmdroute ask "play some music"
  cmdroute ask --name Dana --age 41 --pref genre=jazz "play a song"
  cmdroute ask --pref goal=flexibility --record "suggest a workout"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		age, _ := cmd.Flags().GetInt("age")
		premium, _ := cmd.Flags().GetBool("premium")
		pairs, _ := cmd.Flags().GetStringArray("pref")
		record := appConfig.Storage.Record
		if cmd.Flags().Changed("record") {
			record, _ = cmd.Flags().GetBool("record")
		}

		prefs, err := parsePreferences(pairs)
		if err != nil {
			return err
		}
		user, err := domain.NewUserProfile(name, age, prefs, premium)
		if err != nil {
			return err
		}

		router, cleanup, err := newRouter(cmd, record)
		if err != nil {
			return err
		}
		defer cleanup()

		ix, err := router.Handle(cmd.Context(), user, strings.Join(args, " "))
		if err != nil {
			return err
		}
		if err := simulation.PrintInteraction(cmd.OutOrStdout(), ix); err != nil {
			return err
		}
		if record {
			printSuccess(cmd.ErrOrStderr(), "Recorded interaction %s", ix.Request.ID)
		}
		return nil
	},
}

func init() {
	askCmd.Flags().String("name", "Guest", "user name")
	askCmd.Flags().Int("age", 30, "user age")
	askCmd.Flags().Bool("premium", false, "mark the user as premium")
	askCmd.Flags().StringArray("pref", nil, "preference as key=value (repeatable)")
	askCmd.Flags().Bool("record", false, "store the interaction in the transcript database")
}

func parsePreferences(pairs []string) (map[string]any, error) {
	prefs := make(map[string]any, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --pref %q, want key=value", p)
		}
		prefs[k] = strings.TrimSpace(v)
	}
	return prefs, nil
}

// --- classify ---

var classifyCmd = &cobra.Command{
	Use:   "classify <text>",
	Short: "Show which command and assistant a text maps to",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		cls := intent.Explain(text)

		u, err := domain.NewUserProfile("classify", 1, map[string]any{}, false)
		if err != nil {
			return err
		}
		bot := pipeline.Dispatch(cls.Command, u)

		reason := "keyword: " + cls.Keyword
		if cls.Fallback {
			reason = "no keyword matched, default"
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s)\n", colorize(colorBold, cls.Command.String()), reason)
		fmt.Fprintf(out, "  assistant: %s\n", bot.Name())
		if bot.Specialty() != cls.Command {
			fmt.Fprintf(out, "  %s\n", colorize(colorYellow,
				fmt.Sprintf("no %s assistant; the %s assistant will reject this request", cls.Command, bot.Name())))
		}
		return nil
	},
}

// --- history ---

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded interactions",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent interactions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		user, _ := cmd.Flags().GetString("user")

		store, err := storage.Open(appConfig.Storage.DataDir)
		if err != nil {
			return fmt.Errorf("opening storage: %w", err)
		}
		defer store.Close()

		interactions, err := store.GetRecentInteractions(user, limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(interactions) == 0 {
			fmt.Fprintln(out, "No interactions found.")
			return nil
		}
		for _, ix := range interactions {
			utterance := ix.Utterance
			if len(utterance) > 60 {
				utterance = utterance[:60] + "..."
			}
			fmt.Fprintf(out, "%s  %s  %-8s %-16s %s\n",
				colorize(colorCyan, shortID(ix.ID)),
				ix.CreatedAt.Local().Format(time.DateTime),
				ix.UserName,
				strings.ToUpper(ix.Command),
				utterance,
			)
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single interaction as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.Open(appConfig.Storage.DataDir)
		if err != nil {
			return fmt.Errorf("opening storage: %w", err)
		}
		defer store.Close()

		ix, err := store.GetInteraction(args[0])
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("interaction %q not found", args[0])
		}
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(map[string]any{
			"id":               ix.ID,
			"created_at":       ix.CreatedAt.Format(time.RFC3339Nano),
			"user":             ix.UserName,
			"utterance":        ix.Utterance,
			"command":          ix.Command,
			"keyword":          ix.Keyword,
			"assistant":        ix.Assistant,
			"message":          ix.Message,
			"confidence":       ix.Confidence,
			"action_performed": ix.ActionPerformed,
		})
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count recorded interactions per command",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.Open(appConfig.Storage.DataDir)
		if err != nil {
			return fmt.Errorf("opening storage: %w", err)
		}
		defer store.Close()

		counts, err := store.CountInteractions()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, c := range domain.CommandTypes() {
			printField(out, c.String(), "%d", counts[c.Value()])
		}
		return nil
	},
}

var historyPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete all recorded interactions",
	RunE: func(cmd *cobra.Command, args []string) error {
		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm {
			printWarning(cmd.ErrOrStderr(), "This will delete ALL recorded interactions. Use --confirm to proceed.")
			return nil
		}

		store, err := storage.Open(appConfig.Storage.DataDir)
		if err != nil {
			return fmt.Errorf("opening storage: %w", err)
		}
		defer store.Close()

		n, err := store.PurgeInteractions()
		if err != nil {
			return err
		}
		printSuccess(cmd.ErrOrStderr(), "Deleted %d interactions", n)
		return nil
	},
}

func init() {
	historyListCmd.Flags().Int("limit", 20, "maximum number of interactions to list")
	historyListCmd.Flags().String("user", "", "only show interactions for this user")
	historyPurgeCmd.Flags().Bool("confirm", false, "confirm deletion")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyPurgeCmd)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# %s\n", config.ConfigFilePath())
		for _, k := range config.ShowAll(appConfig) {
			printField(out, k.Key, "%s  (%s)", k.Value, k.EnvVar)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return fmt.Errorf("%w (valid keys: %s)", err, strings.Join(config.ValidKeys(), ", "))
		}

		printSuccess(cmd.ErrOrStderr(), "Set %s = %s", key, value)
		return nil
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a configuration value so the default applies",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.UnsetKey(args[0]); err != nil {
			return fmt.Errorf("%w (valid keys: %s)", err, strings.Join(config.ValidKeys(), ", "))
		}
		printSuccess(cmd.ErrOrStderr(), "Unset %s", args[0])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
}
