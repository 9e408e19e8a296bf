package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// SuccessPrinter writes confirmation lines, coloring them when the destination is a terminal.
type SuccessPrinter struct {
	writer   io.Writer
	colorize bool
}

// NewSuccessPrinter inspects writer and enables color only for terminal file descriptors.
func NewSuccessPrinter(writer io.Writer) SuccessPrinter {
	return SuccessPrinter{writer: writer, colorize: isTerminal(writer)}
}

// Println writes message followed by a newline.
func (printer SuccessPrinter) Println(message string) error {
	if printer.writer == nil {
		return nil
	}
	if printer.colorize {
		successColor := color.New(color.FgGreen)
		successColor.EnableColor()
		_, writeError := successColor.Fprintln(printer.writer, message)
		return writeError
	}
	_, writeError := fmt.Fprintln(printer.writer, message)
	return writeError
}

func isTerminal(writer io.Writer) bool {
	file, isFile := writer.(*os.File)
	if !isFile {
		return false
	}
	if _, noColorRequested := os.LookupEnv("NO_COLOR"); noColorRequested {
		return false
	}
	descriptor := file.Fd()
	return isatty.IsTerminal(descriptor) || isatty.IsCygwinTerminal(descriptor)
}
