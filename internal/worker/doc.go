// Package worker implements the render worker lifecycle and Redis Streams integration.
//
// The worker reads render requests from a Redis stream through a consumer
// group, renders each one with the template engine and publishes the result
// back to a result stream.
//
// Example usage:
//
//	cfg, _ := config.Load()
//	redisClient := redis.NewClient(&redis.Options{...})
//	engine := template.NewEngine(funcs.NewRegistry(), template.WithLogger(logger))
//
//	worker := worker.NewWorker(cfg, redisClient, engine, logger)
//	if err := worker.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer worker.Stop()
//
// Messages carry a JSON document in their data field:
//
//	{"id": "r-1", "template": "Hello {{name}}", "vars": {"name": "ann"}, "strict": true}
//
// id is generated when missing and strict defaults to HBS_STRICT. Successful
// renders go to RESULT_STREAM:
//
//	{"id": "r-1", "output": "Hello ann", "timestamp": "..."}
//
// Failures go to RESULT_STREAM + ".errors" with the error kind
// (arity, missing_parameter, type_mismatch, unknown_helper, runtime,
// template_syntax, render or invalid_request):
//
//	{"id": "r-1", "error": "...", "kind": "render", "timestamp": "..."}
//
// Every message is acknowledged, whether it rendered or not.
//
// Health checks are provided via a separate HTTP server:
//
//	healthServer := worker.NewHealthServer(8082, redisClient, logger)
//	healthServer.Start()
//	defer healthServer.Stop()
package worker
