// Package ui provides helpers for human-readable console output.
//
// ConsoleCommandEventLogger turns shell execution events into short log
// lines, and SuccessPrinter writes confirmation messages for commands.
package ui
