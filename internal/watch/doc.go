// Package watch re-runs an action when the template or variables file changes.
//
// The directories holding the files are watched rather than the files
// themselves, so editors that save by renaming a temporary file are still
// seen. Bursts of events are debounced into one call.
//
// Example usage:
//
//	w, err := watch.New([]string{"page.hbs", "vars.json"}, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//
//	err = w.Run(ctx, func(path string) {
//	    rerender()
//	})
package watch
