package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"iyf-showcase/backend/config"
	"iyf-showcase/backend/internal/client"
	"iyf-showcase/backend/internal/dto"
	"iyf-showcase/backend/internal/listing"
	"iyf-showcase/backend/internal/season"
	applogger "iyf-showcase/backend/pkg/logger"
)

// app 命令共享的依赖
type app struct {
	apiURL   string
	logLevel string
	timeout  time.Duration

	logger   *zap.Logger
	client   *client.Client
	registry *season.Registry
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "directory",
		Short:         "Browse the IYF academy showcase from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.init()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	defaultURL := os.Getenv("SHOWCASE_API_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:8080"
	}
	root.PersistentFlags().StringVar(&a.apiURL, "api-url", defaultURL, "showcase API base URL")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 15*time.Second, "per-command timeout")

	root.AddCommand(newSeasonsCommand(a), newStudentsCommand(a), newFeaturedCommand(a))
	return root
}

func (a *app) init() error {
	logger, err := applogger.NewLogger(&config.LogConfig{Level: a.logLevel, Format: "console"})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.logger = logger
	a.client = client.New(a.apiURL, nil, logger)
	a.registry = season.NewRegistry(a.client, logger)
	return nil
}

// loadSeasons 加载赛季列表；失败时降级为空列表继续运行
func (a *app) loadSeasons(ctx context.Context, w io.Writer) {
	if err := a.registry.Load(ctx); err != nil {
		fmt.Fprintf(w, "warning: seasons unavailable: %v\n", err)
	}
}

// ── seasons ──

func newSeasonsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seasons",
		Short: "List academy seasons",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout)
			defer cancel()

			w := cmd.OutOrStdout()
			if err := a.registry.Load(ctx); err != nil {
				return err
			}
			renderSeasons(w, a.registry)
			return nil
		},
	}
}

// ── students ──

func newStudentsCommand(a *app) *cobra.Command {
	var (
		seasonID int
		search   string
		page     int
	)

	cmd := &cobra.Command{
		Use:   "students",
		Short: "Show one page of the students directory",
		Example: `  # First page across all seasons
  directory students

  # Search season 3 and jump to page 2
  directory students --season 3 --search kamau --page 2`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout)
			defer cancel()

			w := cmd.OutOrStdout()
			a.loadSeasons(ctx, w)

			ctrl := listing.NewController(a.client, a.logger)
			defer ctrl.Close()

			var done <-chan struct{}
			if seasonID > 0 {
				done = ctrl.SelectSeason(&seasonID)
			} else {
				done = ctrl.Start()
			}
			if err := waitSettled(ctx, done); err != nil {
				return err
			}

			ctrl.SetSearch(search)
			if page > 1 && !ctrl.GoToPage(page) {
				fmt.Fprintf(w, "page %d is out of range, showing page 1\n", page)
			}

			v := ctrl.View()
			if v.Error != "" {
				return fmt.Errorf("error loading students: %s", v.Error)
			}
			renderStudents(w, v)
			return nil
		},
	}

	cmd.Flags().IntVar(&seasonID, "season", 0, "season id (0 = all seasons)")
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive name filter")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	return cmd
}

// ── featured ──

func newFeaturedCommand(a *app) *cobra.Command {
	var seasonID int

	cmd := &cobra.Command{
		Use:   "featured",
		Short: "Show featured projects for the current season",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout)
			defer cancel()

			w := cmd.OutOrStdout()
			if err := a.registry.Load(ctx); err != nil {
				return err
			}

			fc := listing.NewFeaturedController(a.client, a.registry, a.logger)
			defer fc.Close()

			if seasonID > 0 {
				picked, ok := findSeason(a.registry.Seasons(), seasonID)
				if !ok {
					return fmt.Errorf("season %d not found", seasonID)
				}
				a.registry.SetCurrent(picked)
			}
			if err := waitSettled(ctx, fc.Settled()); err != nil {
				return err
			}

			st := fc.State()
			if st.Error != "" {
				return fmt.Errorf("error loading featured projects: %s", st.Error)
			}
			renderFeatured(w, st)
			return nil
		},
	}

	cmd.Flags().IntVar(&seasonID, "season", 0, "season id (default: current season)")
	return cmd
}

// ── 输出 ──

func renderSeasons(w io.Writer, reg *season.Registry) {
	cur, hasCurrent := reg.Current()

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Current"})
	for _, s := range reg.Seasons() {
		mark := ""
		if hasCurrent && s.ID == cur.ID {
			mark = "*"
		}
		t.AppendRow(table.Row{s.ID, s.Name, mark})
	}
	t.Render()
}

func renderStudents(w io.Writer, v listing.View) {
	if len(v.Cards) == 0 {
		_, _ = fmt.Fprintln(w, "No students found")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"", "ID", "Name", "Season", "Profile"})
	for _, c := range v.Cards {
		t.AppendRow(table.Row{c.Initials, c.ID, c.Name, c.Season, c.ProfileURL})
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "Page %d of %d (%d students)\n", v.Page, v.TotalPages, v.Matches)
}

func renderFeatured(w io.Writer, st listing.FeaturedState) {
	if len(st.Projects) == 0 {
		_, _ = fmt.Fprintln(w, "No featured projects")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Title", "Student", "URL"})
	for _, p := range st.Projects {
		student := p.Student
		if p.StudentInfo != nil && p.StudentInfo.Name != "" {
			student = p.StudentInfo.Name
		}
		t.AppendRow(table.Row{p.ID, p.Title, student, p.URL})
	}
	t.Render()
	if st.SeasonID != nil {
		_, _ = fmt.Fprintf(w, "Season %s\n", strconv.Itoa(*st.SeasonID))
	}
}

// ── 内部辅助方法 ──

func waitSettled(ctx context.Context, done <-chan struct{}) error {
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func findSeason(seasons []dto.SeasonResponse, id int) (dto.SeasonResponse, bool) {
	for _, s := range seasons {
		if s.ID == id {
			return s, true
		}
	}
	return dto.SeasonResponse{}, false
}
