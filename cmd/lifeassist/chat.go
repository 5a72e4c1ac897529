package main

import (
	lifeassist "github.com/MahidharReddy003/aislingshot-sub000"
	"github.com/MahidharReddy003/aislingshot-sub000/internal/cli"
	"github.com/MahidharReddy003/aislingshot-sub000/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the assistant in the terminal",
	Long: `Starts an interactive chat. Replies are rendered as Markdown when the
output is a terminal. Use --user to personalize replies with a stored profile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		headless, _ := cmd.Flags().GetBool("headless")
		if !cmd.Flags().Changed("headless") {
			headless = !tui.IsInteractive()
		}

		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		rt, err := cli.BuildApp(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer rt.Close()

		return cli.RunChat(ctx, rt.App, cli.ChatOptions{
			UserID:   userID,
			Headless: headless,
			Version:  lifeassist.Version,
		})
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringP("user", "u", "", "User whose profile personalizes the replies")
	chatCmd.Flags().Bool("headless", false, "Plain output without banner, prompt or Markdown rendering")
}
