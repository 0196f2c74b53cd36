package utils

const (
	// GitIgnoreFileName is the name of the Git ignore file honored by --gitignore.
	GitIgnoreFileName = ".gitignore"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// GlobalConfigDirectoryName is the directory under the home directory holding global configuration.
	GlobalConfigDirectoryName = ".dirtree"
	// GlobalConfigFileName is the global configuration file inside GlobalConfigDirectoryName.
	GlobalConfigFileName = "config.yaml"
	// LocalConfigFileName is the configuration file looked up in the working directory.
	LocalConfigFileName = ".dirtree.yaml"
	// ConfigFileType is the format assumed for configuration files without an extension.
	ConfigFileType = "yaml"
)

const (
	// LoggerInitializationFailedMessageFormat is used when the logger cannot be constructed.
	LoggerInitializationFailedMessageFormat = "logger initialization failed: %w"
	// ApplicationExecutionFailedMessage prefixes the final error before exiting.
	ApplicationExecutionFailedMessage = "dirtree failed"
)
