package main

import "github.com/theirongolddev/financeflow/cmd"

func main() {
	cmd.Execute()
}
