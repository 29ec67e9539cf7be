package main

import "github.com/chehxing/docx-to-excel/internal/cli"

func main() {
	cmd := cli.NewExtractCommand()
	cmd.Use = "extract-fields" + cmd.Use[len(cmd.Name()):]
	cli.Main(cmd)
}
