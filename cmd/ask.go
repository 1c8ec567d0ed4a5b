package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/eternal/internal/conversation"
	"github.com/abhisek/eternal/internal/domain"
	"github.com/abhisek/eternal/internal/session"
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Chat with a historical figure in plain text over stdin/stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := bootstrap(ctx, cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		settings := settingsFromFlags(cmd, d.cfg.Session)
		return runREPL(ctx, d.newController(), settings, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

// runREPL starts a session and answers one question per input line until
// EOF or /quit.
func runREPL(ctx context.Context, ctrl *session.Controller, settings domain.Settings, in io.Reader, out io.Writer) error {
	if err := ctrl.StartSession(ctx, settings); err != nil {
		return err
	}
	defer ctrl.Reset()

	snap := ctrl.Snapshot()
	printProfile(out, snap.Profile)
	printLastReply(out, snap)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\nYou> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/analysis":
			printAnalysis(out, ctrl.Snapshot().LatestAnalysis)
			continue
		case "/help":
			fmt.Fprintln(out, "Commands: /analysis, /quit")
			continue
		}

		if !ctrl.SendMessage(ctx, line) {
			fmt.Fprintln(out, "(message not accepted, try again)")
			continue
		}
		printLastReply(out, ctrl.Snapshot())
	}
}

func printProfile(out io.Writer, p *domain.Profile) {
	if p == nil {
		return
	}
	fmt.Fprintf(out, "%s, %s\n", p.Name, p.Title)
	fmt.Fprintf(out, "%s\n", p.Era)
	fmt.Fprintf(out, "\"%s\"\n", p.BioQuote)
	for _, a := range p.KeyAchievements {
		fmt.Fprintf(out, "  - %s\n", a)
	}
}

func printLastReply(out io.Writer, snap conversation.Snapshot) {
	if len(snap.Messages) == 0 {
		return
	}
	last := snap.Messages[len(snap.Messages)-1]
	if last.Role != domain.RoleAssistant {
		return
	}
	name := snap.Settings.TargetPerson
	if snap.Profile != nil {
		name = snap.Profile.Name
	}
	fmt.Fprintf(out, "\n%s> %s\n", name, last.Content)
}

func printAnalysis(out io.Writer, a *domain.TurnResponse) {
	if a == nil {
		fmt.Fprintln(out, "No analysis yet.")
		return
	}
	knowledge := "None recorded"
	if len(a.KnowledgeCovered) > 0 {
		knowledge = strings.Join(a.KnowledgeCovered, "; ")
	}
	confusion := a.PossibleConfusion
	if strings.TrimSpace(confusion) == "" {
		confusion = "None detected."
	}
	fmt.Fprintf(out, "Emotion:    %s\n", a.EmotionTag)
	fmt.Fprintf(out, "Focus:      %s\n", a.StudentFocus)
	fmt.Fprintf(out, "Knowledge:  %s\n", knowledge)
	fmt.Fprintf(out, "Confusion:  %s\n", confusion)
	fmt.Fprintf(out, "Note:       %s\n", a.TeacherNote)
	fmt.Fprintf(out, "Follow-up:  %s\n", a.FollowUpQuestion)
}

func init() {
	askCmd.Flags().String("person", "", "Historical figure to talk with")
	askCmd.Flags().String("grade", "", "Student grade level")
	askCmd.Flags().String("language", "", "Reply language tag")
}
