// Package config provides configuration management for hbs-render.
//
// Configuration is loaded from environment variables and validated on startup.
// All configuration options have sensible defaults for development, so the
// CLI needs no environment at all. Command-line flags override these values.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg)
//
// The render worker checks the Redis and stream settings separately:
//
//	if err := cfg.ValidateWorker(); err != nil {
//	    log.Fatal(err)
//	}
//
// Environment variables:
//   - HBS_STRICT, HBS_DEV_MODE - rendering modes
//   - CEL_ENABLED - registers the expr helper
//   - WORKER_ID, REDIS_ADDR, REDIS_PASS, REDIS_DB - worker identity and Redis
//   - STREAM_KEY, CONSUMER_GROUP, RESULT_STREAM, BLOCK_TIME, MAX_RETRIES - streams
//   - HEALTH_PORT - worker health server
//   - LOG_LEVEL - debug, info, warn or error
package config
