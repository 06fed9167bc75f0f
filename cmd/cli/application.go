package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	cataloguecmd "github.com/temirov/gitcat/cmd/cli/catalogue"
	"github.com/temirov/gitcat/internal/catalogue"
	"github.com/temirov/gitcat/internal/fleet/branches"
	"github.com/temirov/gitcat/internal/fleet/diffs"
	"github.com/temirov/gitcat/internal/fleet/install"
	"github.com/temirov/gitcat/internal/fleet/passthrough"
	"github.com/temirov/gitcat/internal/fleet/push"
	"github.com/temirov/gitcat/internal/fleet/status"
	"github.com/temirov/gitcat/internal/fleet/update"
	"github.com/temirov/gitcat/internal/utils"
)

const (
	applicationNameConstant                 = "git-cat"
	applicationShortDescriptionConstant     = "Catalogue-driven batch git operations"
	applicationLongDescriptionConstant      = "git-cat maintains a catalogue of git repositories and applies batch git operations across every catalogued repository."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format (structured or console)."
	catalogueFlagNameConstant               = "catalogue"
	catalogueFlagUsageConstant              = "Override the catalogue file path."
	prefixFlagNameConstant                  = "prefix"
	prefixFlagUsageConstant                 = "Override the directory catalogued names expand against."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	catalogueConfigurationKeyConstant       = "catalogue"
	cataloguePathConfigKeyConstant          = catalogueConfigurationKeyConstant + ".path"
	cataloguePrefixConfigKeyConstant        = catalogueConfigurationKeyConstant + ".prefix"
	environmentPrefixConstant               = "GITCAT"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	rootCommandInfoMessageConstant          = "git-cat CLI executed"
	rootCommandDebugMessageConstant         = "git-cat CLI diagnostics"
	logFieldCommandNameConstant             = "command_name"
	logFieldArgumentCountConstant           = "argument_count"
	logFieldArgumentsConstant               = "arguments"
	loggerNotInitializedMessageConstant     = "logger not initialized"
	defaultConfigurationSearchPathConstant  = "."
	toolsConfigurationKeyConstant           = "tools"
	installConfigurationKeyConstant         = toolsConfigurationKeyConstant + ".install"
	pushConfigurationKeyConstant            = toolsConfigurationKeyConstant + ".push"
	statusConfigurationKeyConstant          = toolsConfigurationKeyConstant + ".status"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common    ApplicationCommonConfiguration    `mapstructure:"common"`
	Catalogue ApplicationCatalogueConfiguration `mapstructure:"catalogue"`
	Tools     ApplicationToolsConfiguration     `mapstructure:"tools"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationCatalogueConfiguration stores the catalogue file location and prefix override.
type ApplicationCatalogueConfiguration struct {
	Path   string `mapstructure:"path"`
	Prefix string `mapstructure:"prefix"`
}

// ApplicationToolsConfiguration holds configuration for CLI subcommands grouped by tool.
type ApplicationToolsConfiguration struct {
	Install install.CommandConfiguration `mapstructure:"install"`
	Push    push.CommandConfiguration    `mapstructure:"push"`
	Status  status.CommandConfiguration  `mapstructure:"status"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	catalogueFlagValue     string
	prefixFlagValue        string
	catalogueLocator       *catalogue.Locator
	catalogueStore         *catalogue.Store
	commandContextAccessor utils.CommandContextAccessor
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		[]string{defaultConfigurationSearchPathConstant},
	)

	catalogueLocator := catalogue.NewLocator()

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		catalogueLocator:       catalogueLocator,
		catalogueStore:         catalogue.NewStore(catalogueLocator),
		commandContextAccessor: utils.NewCommandContextAccessor(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.catalogueFlagValue, catalogueFlagNameConstant, "", catalogueFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.prefixFlagValue, prefixFlagNameConstant, "", prefixFlagUsageConstant)

	application.registerCommands(cobraCommand)

	application.rootCommand = cobraCommand

	return application
}

func (application *Application) registerCommands(rootCommand *cobra.Command) {
	loggerProvider := func() *zap.Logger {
		return application.logger
	}

	installBuilder := install.CommandBuilder{
		LoggerProvider:               loggerProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		CatalogueProvider:            application.loadCatalogue,
		ConfigurationProvider: func() install.CommandConfiguration {
			return application.configuration.Tools.Install
		},
	}
	if installCommand, buildError := installBuilder.Build(); buildError == nil {
		rootCommand.AddCommand(installCommand)
	}

	updateBuilder := update.CommandBuilder{
		LoggerProvider:               loggerProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		CatalogueProvider:            application.loadCatalogue,
	}
	if pullCommand, buildError := updateBuilder.BuildPull(); buildError == nil {
		rootCommand.AddCommand(pullCommand)
	}
	if fetchCommand, buildError := updateBuilder.BuildFetch(); buildError == nil {
		rootCommand.AddCommand(fetchCommand)
	}

	pushBuilder := push.CommandBuilder{
		LoggerProvider:               loggerProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		CatalogueProvider:            application.loadCatalogue,
		ConfigurationProvider: func() push.CommandConfiguration {
			return application.configuration.Tools.Push
		},
	}
	if pushCommand, buildError := pushBuilder.BuildPush(); buildError == nil {
		rootCommand.AddCommand(pushCommand)
	}
	if commitCommand, buildError := pushBuilder.BuildCommit(); buildError == nil {
		rootCommand.AddCommand(commitCommand)
	}

	statusBuilder := status.CommandBuilder{
		LoggerProvider:               loggerProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		CatalogueProvider:            application.loadCatalogue,
		ConfigurationProvider: func() status.CommandConfiguration {
			return application.configuration.Tools.Status
		},
	}
	if statusCommand, buildError := statusBuilder.Build(); buildError == nil {
		rootCommand.AddCommand(statusCommand)
	}

	diffBuilder := diffs.CommandBuilder{
		LoggerProvider:               loggerProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		CatalogueProvider:            application.loadCatalogue,
	}
	if diffCommand, buildError := diffBuilder.Build(); buildError == nil {
		rootCommand.AddCommand(diffCommand)
	}

	branchBuilder := branches.CommandBuilder{
		LoggerProvider:               loggerProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		CatalogueProvider:            application.loadCatalogue,
	}
	if branchCommand, buildError := branchBuilder.Build(); buildError == nil {
		rootCommand.AddCommand(branchCommand)
	}

	passthroughBuilder := passthrough.CommandBuilder{
		LoggerProvider:               loggerProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		CatalogueProvider:            application.loadCatalogue,
	}
	if passthroughCommand, buildError := passthroughBuilder.Build(); buildError == nil {
		rootCommand.AddCommand(passthroughCommand)
	}

	addBuilder := cataloguecmd.AddCommandBuilder{
		LoggerProvider:               loggerProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		CataloguePathProvider:        application.resolveCataloguePath,
		Store:                        application.catalogueStore,
	}
	if addCommand, buildError := addBuilder.Build(); buildError == nil {
		rootCommand.AddCommand(addCommand)
	}

	removeBuilder := cataloguecmd.RemoveCommandBuilder{
		CataloguePathProvider: application.resolveCataloguePath,
		Store:                 application.catalogueStore,
	}
	if removeCommand, buildError := removeBuilder.Build(); buildError == nil {
		rootCommand.AddCommand(removeCommand)
	}

	listBuilder := cataloguecmd.ListCommandBuilder{
		LoggerProvider:               loggerProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		CatalogueProvider:            application.loadCatalogue,
	}
	if listCommand, buildError := listBuilder.Build(); buildError == nil {
		rootCommand.AddCommand(listCommand)
	}
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatStructured),
		cataloguePathConfigKeyConstant:   "",
		cataloguePrefixConfigKeyConstant: "",
	}
	for configurationKey, configurationValue := range install.DefaultConfigurationValues(installConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}
	for configurationKey, configurationValue := range push.DefaultConfigurationValues(pushConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}
	for configurationKey, configurationValue := range status.DefaultConfigurationValues(statusConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	if application.persistentFlagChanged(command, catalogueFlagNameConstant) {
		application.configuration.Catalogue.Path = application.catalogueFlagValue
	}

	if application.persistentFlagChanged(command, prefixFlagNameConstant) {
		application.configuration.Catalogue.Prefix = application.prefixFlagValue
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Info(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithConfigurationFilePath(
			command.Context(),
			application.configurationMetadata.ConfigFileUsed,
		)
		if cataloguePath, cataloguePathError := application.resolveCataloguePath(); cataloguePathError == nil {
			updatedContext = application.commandContextAccessor.WithCatalogueFilePath(updatedContext, cataloguePath)
		}
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

// resolveCataloguePath returns the catalogue file location honoring the
// --catalogue flag, the catalogue.path configuration, and the default lookup.
func (application *Application) resolveCataloguePath() (string, error) {
	return application.catalogueLocator.Resolve(application.configuration.Catalogue.Path)
}

// loadCatalogue reads the catalogue file and applies the configured prefix override.
func (application *Application) loadCatalogue() (catalogue.Catalogue, error) {
	cataloguePath, pathError := application.resolveCataloguePath()
	if pathError != nil {
		return catalogue.Catalogue{}, pathError
	}

	loadedCatalogue, loadError := application.catalogueStore.Load(cataloguePath)
	if loadError != nil {
		return catalogue.Catalogue{}, loadError
	}

	prefixOverride := strings.TrimSpace(application.configuration.Catalogue.Prefix)
	if len(prefixOverride) > 0 {
		loadedCatalogue.Prefix = prefixOverride
	}

	return loadedCatalogue, nil
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	application.logger.Info(
		rootCommandInfoMessageConstant,
		zap.String(logFieldCommandNameConstant, command.Name()),
		zap.Int(logFieldArgumentCountConstant, len(arguments)),
	)

	application.logger.Debug(
		rootCommandDebugMessageConstant,
		zap.Strings(logFieldArgumentsConstant, arguments),
	)

	if len(arguments) == 0 {
		return command.Help()
	}

	return nil
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
