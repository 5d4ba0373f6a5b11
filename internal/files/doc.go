// Package files provides the file system side of a cleaning run.
//
// This package contains two main components:
//
// Discovery: enumerates the fragment files of an input directory matching a
// glob pattern, skipping hidden files and sub-directories, in name order.
//
// Manager: prepares the output directory. ResetDirectory removes the files
// directly inside an existing directory, or creates it when missing.
//
// Example usage:
//
//	discovery := files.NewDiscovery(logger)
//	fragments, err := discovery.FindFragments("files/input", "*")
//
//	manager := files.NewManager(logger)
//	removed, err := manager.ResetDirectory("files/output")
package files
