package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Yossy4131/LT/internal/core/domain"
	"github.com/Yossy4131/LT/internal/core/timefmt"
	"github.com/spf13/cobra"
)

const contentPreviewLength = 60

var (
	postsUser   string
	postsLimit  int
	postsOffset int
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Inspect posts",
}

var postsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		limit := postsLimit
		if limit == 0 {
			limit = cfg.FeedPageSize
		}

		var posts []*domain.PostWithAuthor
		if postsUser != "" {
			user, err := services.AuthService.FindUser(cmd.Context(), postsUser)
			if err != nil {
				return err
			}
			posts, err = services.PostService.ListByAuthor(cmd.Context(), user.ID, limit, postsOffset)
			if err != nil {
				return fmt.Errorf("failed to list posts: %w", err)
			}
		} else {
			posts, err = services.PostService.List(cmd.Context(), limit, postsOffset)
			if err != nil {
				return fmt.Errorf("failed to list posts: %w", err)
			}
		}

		out := cmd.OutOrStdout()
		if len(posts) == 0 {
			fmt.Fprintln(out, "No posts found")
			return nil
		}

		now := time.Now()
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tAUTHOR\tPOSTED\tCONTENT")
		for _, post := range posts {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
				post.ID,
				post.Username,
				timefmt.Relative(post.CreatedAt, now),
				preview(post.Content),
			)
		}
		w.Flush()

		return nil
	},
}

var postsCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Count posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		count := 0
		if postsUser != "" {
			user, err := services.AuthService.FindUser(cmd.Context(), postsUser)
			if err != nil {
				return err
			}
			count = services.PostService.CountByAuthor(cmd.Context(), user.ID)
		} else {
			count = services.PostService.Count(cmd.Context())
		}

		fmt.Fprintln(cmd.OutOrStdout(), count)
		return nil
	},
}

// preview flattens content onto one line and shortens it for table output
func preview(content string) string {
	flat := strings.Join(strings.Fields(content), " ")
	runes := []rune(flat)
	if len(runes) <= contentPreviewLength {
		return flat
	}
	return string(runes[:contentPreviewLength-3]) + "..."
}

func init() {
	rootCmd.AddCommand(postsCmd)
	postsCmd.AddCommand(postsListCmd)
	postsCmd.AddCommand(postsCountCmd)

	postsCmd.PersistentFlags().StringVar(&postsUser, "user", "", "Only posts by this username")
	postsListCmd.Flags().IntVar(&postsLimit, "limit", 0, "Maximum number of posts (defaults to feed_page_size)")
	postsListCmd.Flags().IntVar(&postsOffset, "offset", 0, "Number of posts to skip")
}
