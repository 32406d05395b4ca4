package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agenthands/labscan/internal/apperr"
	"github.com/agenthands/labscan/internal/capture"
	"github.com/agenthands/labscan/internal/voice"
)

var identifyJSON bool

var identifyCmd = &cobra.Command{
	Use:   "identify <image>",
	Short: "Identify the lab equipment in a photo",
	Long: `Identify the lab equipment in a JPEG, PNG, WebP or GIF photo.

Non-laboratory items are rejected with the model's reason.`,
	Args: cobra.ExactArgs(1),
	RunE: runIdentify,
}

func init() {
	identifyCmd.Flags().BoolVar(&identifyJSON, "json", false, "Print the raw identification as JSON")
}

func runIdentify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, cfg, err := newAssistant(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	scanner := a.NewScanner()
	defer scanner.Close()

	if err := scanner.Open(ctx, capture.OpenFile(args[0], cfg.Server.MaxImageBytes)); err != nil {
		return fmt.Errorf("open image: %w", err)
	}

	res, err := scanner.Scan(ctx)
	if err != nil {
		n := apperr.UserMessage(apperr.OpIdentify, err)
		return fmt.Errorf("%s: %s", n.Title, scanner.Message())
	}

	out := cmd.OutOrStdout()
	if identifyJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Identification)
	}

	id := res.Identification
	if !res.Accepted {
		fmt.Fprintf(out, "%s\n%s\n", id.EquipmentName, id.Reason())
		return nil
	}
	fmt.Fprintf(out, "Identified as: %s\n", id.EquipmentName)
	fmt.Fprintf(out, "Category: %s\n", id.Category)
	fmt.Fprintf(out, "%s\n", id.Description)
	fmt.Fprintf(out, "\n%s\n", voice.Narration(id.EquipmentName, id.Category, id.Description))
	return nil
}
