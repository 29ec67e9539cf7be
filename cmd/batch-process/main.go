package main

import "github.com/chehxing/docx-to-excel/internal/cli"

func main() {
	cmd := cli.NewBatchCommand()
	cmd.Use = "batch-process" + cmd.Use[len(cmd.Name()):]
	cli.Main(cmd)
}
