package main

import "github.com/dmirandah/e2kops/cmd"

func main() {
	cmd.Execute()
}
