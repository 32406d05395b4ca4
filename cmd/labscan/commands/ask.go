package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agenthands/labscan/internal/apperr"
	"github.com/agenthands/labscan/internal/voice"
)

var askInteractive bool

var askCmd = &cobra.Command{
	Use:   "ask <equipment> [question]",
	Short: "Ask a question about a piece of equipment",
	Long: `Ask a question about a piece of equipment. Questions must be
between 10 and 200 characters.

With --interactive, questions are read one per line from stdin. Saying
"another equipment" ends the session.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVarP(&askInteractive, "interactive", "i", false, "Read questions from stdin")
}

func runAsk(cmd *cobra.Command, args []string) error {
	if !askInteractive && len(args) < 2 {
		return fmt.Errorf("a question is required unless --interactive is set")
	}

	ctx := cmd.Context()
	a, _, err := newAssistant(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	panel := a.NewPanel(args[0])
	out := cmd.OutOrStdout()

	if !askInteractive {
		answer, err := panel.Submit(ctx, args[1])
		if err != nil {
			n := apperr.UserMessage(apperr.OpExplain, err)
			return fmt.Errorf("%s", n.Message)
		}
		fmt.Fprintln(out, answer)
		return nil
	}

	in := bufio.NewScanner(cmd.InOrStdin())
	fmt.Fprintf(out, "Ask about %s (\"another equipment\" to quit)\n> ", panel.EquipmentName())
	for in.Scan() {
		line := strings.TrimSpace(in.Text())
		if line == "" {
			fmt.Fprint(out, "> ")
			continue
		}
		if voice.ParseCommand(line) == voice.CommandScanAnother {
			return nil
		}

		if _, err := panel.Submit(ctx, line); err != nil {
			fmt.Fprintln(out, apperr.UserMessage(apperr.OpExplain, err).Message)
		} else {
			fmt.Fprintln(out, panel.Explanation())
		}
		fmt.Fprint(out, "> ")
	}
	return in.Err()
}
