package main

import "github.com/chehxing/docx-to-excel/internal/cli"

func main() {
	cmd := cli.NewTablesCommand()
	cmd.Use = "extract-tables" + cmd.Use[len(cmd.Name()):]
	cli.Main(cmd)
}
