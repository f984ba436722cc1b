package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/career-guide/internal/counsel"
	"github.com/jonathan/career-guide/internal/i18n"
	"github.com/jonathan/career-guide/internal/types"
	"github.com/spf13/cobra"
)

func newChatCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the career counselor",
	}
	cmd.AddCommand(newChatSendCmd(o), newChatHistoryCmd(o), newChatClearCmd(o))
	return cmd
}

// chatLanguage returns the English name of the reply language: the --lang
// code when given, otherwise the active UI language.
func chatLanguage(app *application, code string) string {
	if code != "" {
		return i18n.Info(code).Name
	}
	return app.prefs.LanguageName()
}

// transcript opens the signed-in user's chat transcript.
func transcript(cmd *cobra.Command, app *application) (*counsel.Transcript, error) {
	session, err := app.session(cmd.Context())
	if err != nil {
		return nil, err
	}
	return counsel.NewTranscript(app.store, session.Email), nil
}

func newChatSendCmd(o *rootOptions) *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "send <message...>",
		Short: "Send a message and print the counselor's reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(o, func(cmd *cobra.Command, app *application, args []string) error {
			tr, err := transcript(cmd, app)
			if err != nil {
				return err
			}
			counselor, closeFn, err := app.counselor(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			reply, err := tr.Converse(cmd.Context(), counselor, strings.Join(args, " "), chatLanguage(app, lang))
			if reply.Content != "" {
				fmt.Fprintln(cmd.OutOrStdout(), reply.Content)
			}
			return userFacing(err)
		}),
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Reply language code (default: the active language)")
	return cmd
}

func newChatHistoryCmd(o *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print the chat transcript, or the latest messages newest first with --limit",
		Args:  cobra.NoArgs,
		RunE: withApp(o, func(cmd *cobra.Command, app *application, _ []string) error {
			tr, err := transcript(cmd, app)
			if err != nil {
				return err
			}

			var messages []types.ChatMessage
			if limit > 0 {
				messages, err = tr.Recent(cmd.Context(), limit)
			} else {
				messages, err = tr.Load(cmd.Context())
			}
			if err != nil {
				return err
			}
			printMessages(cmd.OutOrStdout(), messages)
			return nil
		}),
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show only the latest n messages")
	return cmd
}

func newChatClearCmd(o *rootOptions) *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the chat transcript",
		Args:  cobra.NoArgs,
		RunE: withApp(o, func(cmd *cobra.Command, app *application, _ []string) error {
			tr, err := transcript(cmd, app)
			if err != nil {
				return err
			}
			if _, err := tr.Clear(cmd.Context(), chatLanguage(app, lang)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), app.label("chat.cleared"))
			return nil
		}),
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Language code for the greeting (default: the active language)")
	return cmd
}

func printMessages(w io.Writer, messages []types.ChatMessage) {
	for _, m := range messages {
		who := "you"
		if m.Role == types.RoleModel {
			who = "guide"
		}
		stamp := time.UnixMilli(m.Timestamp).Format("2006-01-02 15:04")
		fmt.Fprintf(w, "[%s] %s: %s\n", stamp, who, m.Content)
	}
}
