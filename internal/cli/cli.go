// Package cli provides the command line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/dirtree/internal/commands"
	"github.com/temirov/dirtree/internal/config"
	"github.com/temirov/dirtree/internal/output"
	"github.com/temirov/dirtree/internal/services/clipboard"
	"github.com/temirov/dirtree/internal/types"
	"github.com/temirov/dirtree/internal/utils"
)

const (
	maxDepthFlagName   = "max-depth"
	filesFlagName      = "files"
	extensionFlagName  = "extension"
	sizeFlagName       = "size"
	outputFlagName     = "output"
	inputFlagName      = "input"
	gitignoreFlagName  = "gitignore"
	copyFlagName       = "copy"
	configFlagName     = "config"
	verboseFlagName    = "verbose"
	versionFlagName    = "version"
	maxDepthShorthand  = "d"
	filesShorthand     = "f"
	extensionShorthand = "e"
	sizeShorthand      = "s"
	outputShorthand    = "o"
	inputShorthand     = "i"
	verboseShorthand   = "v"

	maxDepthFlagDescription  = "maximum depth of the displayed tree"
	filesFlagDescription     = "include files (directories only by default)"
	extensionFlagDescription = "only include files ending with this suffix, for example .txt"
	sizeFlagDescription      = "show file sizes"
	outputFlagDescription    = "save the directory structure to an XML file"
	inputFlagDescription     = "load the directory structure from an XML file instead of scanning"
	gitignoreFlagDescription = "skip entries matched by the root .gitignore"
	copyFlagDescription      = "copy the rendered tree to the clipboard"
	configFlagDescription    = "configuration file (defaults to ./" + utils.LocalConfigFileName + ")"
	verboseFlagDescription   = "enable debug logging"
	versionFlagDescription   = "display application version"

	defaultPath          = "."
	rootUse              = "dirtree [directory]"
	rootShortDescription = "display a directory structure as a tree"
	rootLongDescription  = `dirtree renders the directory structure below a path as a text tree.
Use --files to include files, --extension to filter them, and --size to show their sizes.
Use --output to save the tree as XML and --input to render a previously saved XML tree.`
	rootUsageExample = `  # Show directories two levels deep
  dirtree -d 2 ./project

  # Show Go files with sizes and save the tree
  dirtree -f -e .go -s -o tree.xml .

  # Render a saved tree
  dirtree -i tree.xml`

	versionTemplate            = "dirtree version: %s\n"
	loadedHeaderFormat         = "Directory structure loaded from %s:\n"
	savedMessageFormat         = "Directory structure saved to %s.\n"
	copiedMessage              = "tree copied to clipboard"
	errorRootExcludedFormat    = "max depth %d excludes the root directory %s"
	errorLoadConfigFormat      = "loading configuration: %w"
	errorLoadIgnoreFormat      = "loading ignore rules: %w"
	errorCopyClipboardFormat   = "copying tree to clipboard: %w"
	errorWriteOutputFormat     = "writing output: %w"
	errorMissingLogLevelMessage = "verbose logging requested but no adjustable log level was provided"
)

// Dependencies carries the collaborators the root command needs.
type Dependencies struct {
	Logger   *zap.Logger
	LogLevel *zap.AtomicLevel
	Copier   clipboard.Copier
	Stdout   io.Writer
	Stderr   io.Writer
	// WorkingDirectory is used to locate the local configuration file; empty means os.Getwd.
	WorkingDirectory string
}

// treeOptions stores the values bound to the root command flags.
type treeOptions struct {
	maxDepth    int
	showFiles   bool
	extension   string
	showSize    bool
	outputPath  string
	inputPath   string
	gitignore   bool
	copy        bool
	configPath  string
	verbose     bool
	showVersion bool
}

// Execute runs the dirtree application.
func Execute(logger *zap.Logger, logLevel *zap.AtomicLevel) error {
	rootCommand := NewRootCommand(Dependencies{
		Logger:   logger,
		LogLevel: logLevel,
		Copier:   clipboard.NewService(),
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	})
	return rootCommand.Execute()
}

// NewRootCommand builds the root Cobra command.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	if dependencies.Stdout == nil {
		dependencies.Stdout = os.Stdout
	}
	if dependencies.Stderr == nil {
		dependencies.Stderr = os.Stderr
	}

	var options treeOptions

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          withUsageOnError(cobra.MaximumNArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				_, err := fmt.Fprintf(dependencies.Stdout, versionTemplate, utils.GetApplicationVersion())
				return err
			}
			if options.verbose {
				if dependencies.LogLevel == nil {
					return errors.New(errorMissingLogLevelMessage)
				}
				dependencies.LogLevel.SetLevel(zap.DebugLevel)
			}
			if options.inputPath != "" {
				return renderSavedTree(dependencies, options)
			}
			applicationConfiguration, configError := config.LoadApplicationConfiguration(config.LoadOptions{
				WorkingDirectory: dependencies.WorkingDirectory,
				ExplicitFilePath: options.configPath,
			})
			if configError != nil {
				return fmt.Errorf(errorLoadConfigFormat, configError)
			}
			maxDepth := applyConfigurationDefaults(command, &options, applicationConfiguration.Tree)

			directoryPath := defaultPath
			if len(arguments) > 0 {
				directoryPath = arguments[0]
			}
			return scanTree(dependencies, options, maxDepth, directoryPath)
		},
	}

	rootCommand.SetFlagErrorFunc(func(command *cobra.Command, flagError error) error {
		printUsage(command)
		return flagError
	})

	flagSet := rootCommand.Flags()
	flagSet.IntVarP(&options.maxDepth, maxDepthFlagName, maxDepthShorthand, 0, maxDepthFlagDescription)
	registerBooleanFlag(flagSet, &options.showFiles, filesFlagName, filesShorthand, false, filesFlagDescription)
	flagSet.StringVarP(&options.extension, extensionFlagName, extensionShorthand, "", extensionFlagDescription)
	registerBooleanFlag(flagSet, &options.showSize, sizeFlagName, sizeShorthand, false, sizeFlagDescription)
	flagSet.StringVarP(&options.outputPath, outputFlagName, outputShorthand, "", outputFlagDescription)
	flagSet.StringVarP(&options.inputPath, inputFlagName, inputShorthand, "", inputFlagDescription)
	registerBooleanFlag(flagSet, &options.gitignore, gitignoreFlagName, "", false, gitignoreFlagDescription)
	registerBooleanFlag(flagSet, &options.copy, copyFlagName, "", false, copyFlagDescription)
	flagSet.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	registerBooleanFlag(flagSet, &options.verbose, verboseFlagName, verboseShorthand, false, verboseFlagDescription)
	flagSet.BoolVar(&options.showVersion, versionFlagName, false, versionFlagDescription)

	rootCommand.SetOut(dependencies.Stdout)
	rootCommand.SetErr(dependencies.Stderr)
	return rootCommand
}

// applyConfigurationDefaults copies configured values onto flags the user did not set
// and returns the effective depth limit, nil when unbounded.
func applyConfigurationDefaults(command *cobra.Command, options *treeOptions, treeConfiguration config.TreeConfiguration) *int {
	flagSet := command.Flags()
	if !flagSet.Changed(filesFlagName) && treeConfiguration.Files != nil {
		options.showFiles = *treeConfiguration.Files
	}
	if !flagSet.Changed(sizeFlagName) && treeConfiguration.Size != nil {
		options.showSize = *treeConfiguration.Size
	}
	if !flagSet.Changed(extensionFlagName) && treeConfiguration.Extension != "" {
		options.extension = treeConfiguration.Extension
	}
	if !flagSet.Changed(gitignoreFlagName) && treeConfiguration.Gitignore != nil {
		options.gitignore = *treeConfiguration.Gitignore
	}
	if !flagSet.Changed(copyFlagName) && treeConfiguration.Clipboard != nil {
		options.copy = *treeConfiguration.Clipboard
	}
	if flagSet.Changed(maxDepthFlagName) {
		maxDepth := options.maxDepth
		return &maxDepth
	}
	if treeConfiguration.MaxDepth != nil {
		maxDepth := *treeConfiguration.MaxDepth
		return &maxDepth
	}
	return nil
}

// withUsageOnError prints usage when positional argument validation fails.
func withUsageOnError(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(command *cobra.Command, arguments []string) error {
		if validationError := validate(command, arguments); validationError != nil {
			printUsage(command)
			return validationError
		}
		return nil
	}
}

func printUsage(command *cobra.Command) {
	fmt.Fprintln(command.ErrOrStderr(), command.UsageString())
}

// renderSavedTree renders a tree loaded from XML. Scan flags and configuration do not apply.
func renderSavedTree(dependencies Dependencies, options treeOptions) error {
	directory, loadError := output.LoadXML(options.inputPath)
	if loadError != nil {
		return loadError
	}
	if _, err := fmt.Fprintf(dependencies.Stdout, loadedHeaderFormat, options.inputPath); err != nil {
		return fmt.Errorf(errorWriteOutputFormat, err)
	}
	return renderTree(dependencies, options, directory)
}

// scanTree builds the tree from the filesystem, renders it and optionally saves it.
func scanTree(dependencies Dependencies, options treeOptions, maxDepth *int, directoryPath string) error {
	treeBuilder := commands.NewTreeBuilder(dependencies.Logger)
	if maxDepth != nil {
		treeBuilder.WithMaxDepth(*maxDepth)
	}
	treeBuilder.ShowFiles = options.showFiles
	treeBuilder.Extension = options.extension
	treeBuilder.ShowSize = options.showSize
	if options.gitignore {
		ignoreMatcher, ignoreError := config.LoadIgnoreMatcher(directoryPath)
		if ignoreError != nil {
			return fmt.Errorf(errorLoadIgnoreFormat, ignoreError)
		}
		treeBuilder.IgnoreMatcher = ignoreMatcher
	}

	directory, buildError := treeBuilder.Build(directoryPath)
	if buildError != nil {
		return buildError
	}
	if directory == nil {
		return fmt.Errorf(errorRootExcludedFormat, *maxDepth, directoryPath)
	}
	if renderError := renderTree(dependencies, options, directory); renderError != nil {
		return renderError
	}

	if options.outputPath != "" {
		if saveError := output.SaveXML(directory, options.outputPath); saveError != nil {
			return saveError
		}
		if _, err := fmt.Fprintf(dependencies.Stdout, savedMessageFormat, options.outputPath); err != nil {
			return fmt.Errorf(errorWriteOutputFormat, err)
		}
	}
	return nil
}

func renderTree(dependencies Dependencies, options treeOptions, directory *types.Directory) error {
	renderedTree := output.RenderTextString(directory)
	if _, err := io.WriteString(dependencies.Stdout, renderedTree); err != nil {
		return fmt.Errorf(errorWriteOutputFormat, err)
	}
	if !options.copy {
		return nil
	}
	if dependencies.Copier == nil {
		return fmt.Errorf(errorCopyClipboardFormat, clipboard.ErrUnsupported)
	}
	if copyError := dependencies.Copier.Copy(renderedTree); copyError != nil {
		return fmt.Errorf(errorCopyClipboardFormat, copyError)
	}
	dependencies.Logger.Debug(copiedMessage, zap.Int("bytes", len(renderedTree)))
	return nil
}
