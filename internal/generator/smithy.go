package generator

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
)

// buildSpecs regenerates the OpenAPI output by running smithy clean and
// smithy build in the model directory.
func buildSpecs(ctx context.Context, dir string) error {
	for _, sub := range []string{"clean", "build"} {
		slog.Info("running smithy", slog.String("command", sub))
		cmd := exec.CommandContext(ctx, "smithy", sub)
		cmd.Dir = dir
		out, err := cmd.CombinedOutput()
		if len(out) > 0 {
			slog.Debug("smithy output", slog.String("command", sub), slog.String("output", string(out)))
		}
		if err != nil {
			return fmt.Errorf("smithy %s: %w", sub, err)
		}
	}
	return nil
}
