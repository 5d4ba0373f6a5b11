// Package app provides application initialization and lifecycle management
// for a cleaning run.
//
// # Initialization Flow
//
//	1. Validate the configuration
//	2. Initialize logging and observability
//	3. Resolve the input and output paths
//	4. Build the pipeline steps and their runner
//
// # Usage
//
//	application, err := app.NewApplication(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	defer application.Close(ctx)
//
//	summary, err := application.Run(ctx)
//
// # Error Handling
//
// All errors are returned to the caller. The app does not call os.Exit()
// directly, allowing the main function to control the exit process.
package app
