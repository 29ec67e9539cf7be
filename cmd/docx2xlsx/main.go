package main

import "github.com/chehxing/docx-to-excel/internal/cli"

func main() {
	cli.Main(cli.NewRootCommand())
}
