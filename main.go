package main

import "github.com/CraigKelly/ensample/cmd"

// TODO: walk-move kernel (Goodman & Weare's other proposal) as a second Move

func main() {
	cmd.Execute()
}
