package main

import "github.com/hvariant/cpptoml/cmd"

func main() {
	cmd.Execute()
}
