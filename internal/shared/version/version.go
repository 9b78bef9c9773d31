package version

// Version is overridden at build time with -ldflags "-X objcunused/internal/shared/version.Version=...".
var Version = "dev"
