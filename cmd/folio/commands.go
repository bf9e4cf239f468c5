package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/shishir-py/personal-portfolio-sub000/internal/seed"
	apiclient "github.com/shishir-py/personal-portfolio-sub000/pkg/api/client"
	"github.com/shishir-py/personal-portfolio-sub000/pkg/engagement"
	"github.com/shishir-py/personal-portfolio-sub000/pkg/logger"
)

const requestTimeout = 15 * time.Second

var (
	loginEmail    string
	loginPassword string
	seedFile      string
	listOpts      apiclient.ListOptions
	statsDays     int
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in as the site admin and store the token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(loginEmail) == "" {
			return errors.New("--email is required")
		}
		secret := strings.TrimSpace(loginPassword)
		if secret == "" {
			fmt.Fprint(cmd.OutOrStdout(), "Password: ")
			bytes, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Fprintln(cmd.OutOrStdout())
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			secret = string(bytes)
		}

		cfg, client, err := session(false)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
		defer cancel()
		resp, err := client.Login(ctx, loginEmail, secret)
		if err != nil {
			return err
		}
		cfg.AccessToken = resp.Tokens.AccessToken
		cfg.RefreshToken = resp.Tokens.RefreshToken
		if err := saveConfig(cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s (token valid for %s)\n",
			resp.User.Email, time.Duration(resp.Tokens.ExpiresIn)*time.Second)
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demonstration content into the site",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			doc seed.Document
			err error
		)
		if seedFile != "" {
			doc, err = seed.Load(seedFile)
		} else {
			doc, err = seed.Demo()
		}
		if err != nil {
			return err
		}
		cfg, client, err := session(true)
		if err != nil {
			return err
		}
		log := logger.New("folio", slog.LevelInfo)
		sum, err := seed.Apply(cmd.Context(), client, cfg.AccessToken, doc, log)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d skills, %d projects, %d posts\n", sum.Skills, sum.Projects, sum.Posts)
		return nil
	},
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := session(false)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
		defer cancel()
		items, total, err := client.ListProjects(ctx, listOpts)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tSLUG\tLIKES\tTAGS")
		for _, p := range items {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", p.ID, p.Slug, p.Likes, strings.Join(p.Tags, ","))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d of %d\n", len(items), total)
		return nil
	},
}

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List blog posts (drafts included when logged in)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, err := session(false)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
		defer cancel()
		items, total, err := client.ListPosts(ctx, cfg.AccessToken, listOpts)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tSLUG\tSTATUS\tVIEWS\tLIKES")
		for _, p := range items {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n", p.ID, p.Slug, p.Status(), p.Views, p.Likes)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d of %d\n", len(items), total)
		return nil
	},
}

var likeCmd = &cobra.Command{
	Use:   "like <project|post> <id>",
	Short: "Toggle a like, remembering it locally like a browser would",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := engagement.ParseTargetType(args[0])
		if err != nil {
			return err
		}
		_, client, err := session(false)
		if err != nil {
			return err
		}
		path, err := configPath("likes.json")
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
		defer cancel()
		current, err := client.Likes(ctx, t, args[1])
		if err != nil {
			return err
		}
		tracker := apiclient.NewLikeTracker(client, apiclient.NewFileLikeStore(path))
		state, err := tracker.Toggle(ctx, t, args[1], current)
		if err != nil {
			return err
		}
		verb := "unliked"
		if state.Liked {
			verb = "liked"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s (%d likes)\n", verb, t, args[1], state.Count)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show visitor statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, err := session(true)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
		defer cancel()
		stats, err := client.VisitorStats(ctx, cfg.AccessToken, statsDays)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "total %d  unique %d  today %d\n", stats.Total, stats.Unique, stats.Today)
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "PATH\tVIEWS")
		for _, p := range stats.TopPaths {
			fmt.Fprintf(tw, "%s\t%d\n", p.Path, p.Count)
		}
		return tw.Flush()
	},
}

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload an image or PDF and print its URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, err := session(true)
		if err != nil {
			return err
		}
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()
		file, err := client.Upload(ctx, cfg.AccessToken, filepath.Base(args[0]), f)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s, %d bytes)\n", file.URL, file.ContentType, file.Size)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Admin email address")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password (supply to avoid prompt)")
	seedCmd.Flags().StringVar(&seedFile, "file", "", "YAML seed file (defaults to the built-in demo)")
	for _, c := range []*cobra.Command{projectsCmd, postsCmd} {
		c.Flags().StringVar(&listOpts.Category, "category", "", "Filter by category")
		c.Flags().StringVar(&listOpts.Status, "status", "", "Filter by status")
		c.Flags().StringVar(&listOpts.Tag, "tag", "", "Filter by tag")
		c.Flags().StringVar(&listOpts.Search, "search", "", "Case-insensitive text search")
		c.Flags().StringVar(&listOpts.Sort, "sort", "", "newest|oldest|title|order|popular|views")
		c.Flags().IntVar(&listOpts.Limit, "limit", 0, "Maximum number of results")
		c.Flags().IntVar(&listOpts.Offset, "offset", 0, "Results to skip")
	}
	statsCmd.Flags().IntVar(&statsDays, "days", 30, "Days of traffic to summarise")
}
