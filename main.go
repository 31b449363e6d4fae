package main

import "github.com/gaurav-prasanna/xhtml2md/cmd"

func main() {
	cmd.Execute()
}
