// Package netstore provides read access to saved wireless network
// configurations.
//
// Modes resolve network IDs through the Store interface; they never write to
// it. Three backends are provided:
//
//   - Memory holds configurations in a map and is used by tests and the
//     simulator.
//   - File reads and writes a YAML profile file.
//   - UCI reads station interfaces from an OpenWrt wireless config.
//
// # Network IDs
//
// Memory and File keep the ID stored with each profile. UCI numbers station
// sections in file order starting at zero, so IDs are stable only while the
// wireless config is not reordered.
package netstore
