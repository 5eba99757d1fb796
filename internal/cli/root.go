package cli

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/mgpai22/subshift/internal/config"
	"github.com/mgpai22/subshift/internal/logging"
	"github.com/mgpai22/subshift/internal/subtitle"
	"github.com/spf13/cobra"
)

var (
	ErrInvalidArgumentCount = errors.New("invalid argument count")
	ErrInvalidOffsetFormat  = errors.New("invalid SECONDS format")
)

var (
	logger    = logging.NewNop()
	newLogger = logging.NewLogger
)

type options struct {
	verbose    bool
	output     string
	encoding   string
	style      string
	configPath string
}

var negativeNumber = regexp.MustCompile(`^-\d+$`)

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "subshift FILE SECONDS",
		Short: "Shift every timestamp in a subtitle file",
		Long: `Subshift moves all cue times of a SubRip style subtitle file by a fixed
number of seconds. Ids, text and formatting of every cue are kept.

Times behave like a wall clock: shifting past midnight wraps around
instead of failing. The result is written to stdout unless --output is set.`,
		Example: `  subshift subtitle.srt -20
  subshift subtitle.srt 3 --style srt -o fixed.srt
  subshift legacy.srt 12 --encoding windows-1252`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				// cobra prints usage to the output stream; keep it on stderr
				cmd.SilenceUsage = true
				fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
				return fmt.Errorf(
					"%w: expected FILE and SECONDS, got %d argument(s)",
					ErrInvalidArgumentCount,
					len(args),
				)
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShift(cmd, opts, args)
		},
	}

	cmd.Flags().
		BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")
	cmd.Flags().
		StringVarP(&opts.output, "output", "o", "", "Output file path (default stdout)")
	cmd.Flags().
		StringVarP(&opts.encoding, "encoding", "e", "", "Input encoding, or 'auto' to detect (default from config, else auto)")
	cmd.Flags().
		StringVarP(&opts.style, "style", "s", "", "Time style: compact (0:0:3,0) or srt (00:00:03,000)")
	cmd.Flags().
		StringVar(&opts.configPath, "config", "", "Config file (or set "+config.EnvPath+" env var)")

	return cmd
}

func Execute() error {
	cmd := newRootCmd()
	cmd.SetArgs(normalizeArgs(cmd, os.Args[1:]))
	return cmd.Execute()
}

// normalizeArgs keeps negative offsets such as "-20" away from the flag
// parser. Flags and their values stay in front, then a "--" terminator, then
// every positional argument in its original order.
func normalizeArgs(cmd *cobra.Command, args []string) []string {
	if slices.Contains(args, "--") ||
		!slices.ContainsFunc(args, negativeNumber.MatchString) {
		return args
	}

	var flagArgs, positional []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "-" || !strings.HasPrefix(arg, "-") || negativeNumber.MatchString(arg) {
			positional = append(positional, arg)
			continue
		}
		flagArgs = append(flagArgs, arg)
		if takesValue(cmd, arg) && i+1 < len(args) {
			i++
			flagArgs = append(flagArgs, args[i])
		}
	}
	return append(append(flagArgs, "--"), positional...)
}

// takesValue reports whether the flag token arg consumes the next argument.
func takesValue(cmd *cobra.Command, arg string) bool {
	flags := cmd.Flags()
	if name, ok := strings.CutPrefix(arg, "--"); ok {
		if strings.Contains(name, "=") {
			return false
		}
		f := flags.Lookup(name)
		return f != nil && f.NoOptDefVal == ""
	}

	// shorthand group such as -vo: the first value flag eats the rest
	short := arg[1:]
	for i := range len(short) {
		f := flags.ShorthandLookup(short[i : i+1])
		if f == nil {
			return false
		}
		if f.NoOptDefVal == "" {
			return i == len(short)-1
		}
	}
	return false
}

// resolve fills unset flags from the config file and creates the logger.
func (o *options) resolve(cmd *cobra.Command) error {
	cmd.SilenceUsage = true
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("encoding") {
		o.encoding = cfg.Encoding
	}
	if !flags.Changed("style") {
		o.style = cfg.Style
	}
	if !flags.Changed("verbose") {
		o.verbose = cfg.Verbose
	}

	logger = newLogger(o.verbose)
	return nil
}

func parseOffset(s string) (int64, error) {
	offset, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number of seconds", ErrInvalidOffsetFormat, s)
	}
	return offset, nil
}

func runShift(cmd *cobra.Command, opts *options, args []string) error {
	cmd.SilenceUsage = true
	subtitlePath := args[0]

	offset, err := parseOffset(args[1])
	if err != nil {
		return err
	}

	style, err := subtitle.ParseStyle(opts.style)
	if err != nil {
		return fmt.Errorf("%w: %q", err, opts.style)
	}
	writer, err := subtitle.NewWriter(style)
	if err != nil {
		return fmt.Errorf("failed to create subtitle writer: %w", err)
	}

	logger.Infow("Parsing subtitle file",
		"input", subtitlePath,
		"encoding", opts.encoding,
	)

	track, used, err := subtitle.Open(subtitlePath, opts.encoding)
	if err != nil {
		return fmt.Errorf("failed to parse subtitle file: %w", err)
	}

	logger.Infow("Parsed subtitle file",
		"records", len(track.Records),
		"skipped_lines", track.Skipped,
		"encoding", used,
	)
	if track.Truncated {
		logger.Warnw("Input ended inside an incomplete block, dropping it",
			"input", subtitlePath,
		)
	}

	shifted := track.Shift(offset)

	logger.Infow("Writing shifted subtitles",
		"offset_seconds", offset,
		"style", style,
		"output", opts.output,
	)

	if opts.output == "" {
		return writer.Write(shifted, cmd.OutOrStdout())
	}
	return subtitle.WriteFile(writer, shifted, opts.output)
}
