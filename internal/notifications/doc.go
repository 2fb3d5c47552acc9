// Package notifications delivers pipeline events via pluggable notifiers.
//
// The default implementation publishes to ntfy using the topic configured in
// config.toml and gracefully degrades to a no-op when notifications are
// disabled. The pipeline runner announces run start, completion, and failure;
// the CLI exposes a manual test notification.
//
// Extend this package if you need alternative transports; pipeline code
// depends only on the simple Service interface.
package notifications
