package main

import "github.com/Elysium-Labs-EU/graphctl/cmd"

func main() {
	cmd.Execute()
}
