package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/OliveiraNt/topicscope/internal/application"
	"gopkg.in/yaml.v3"
)

const describeUsage = "usage: topicscope describe <cluster> <topic> [-o json|yaml]"

// Describe fetches one topic description and writes it to out.
// Flags may appear before, between or after the positional arguments.
func Describe(ctx context.Context, topicService *application.TopicService, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("describe", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	format := fs.String("o", "json", "output format: json or yaml")

	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return fmt.Errorf("%w; %s", err, describeUsage)
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
	if len(positional) != 2 {
		return fmt.Errorf("expected cluster and topic; %s", describeUsage)
	}
	if *format != "json" && *format != "yaml" {
		return fmt.Errorf("unsupported output format %q; %s", *format, describeUsage)
	}

	desc, err := topicService.DescribeTopic(ctx, positional[0], positional[1])
	if err != nil {
		return err
	}

	if *format == "yaml" {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(desc); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(desc)
}
