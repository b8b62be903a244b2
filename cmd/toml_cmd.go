package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/hvariant/cpptoml/parse/toml"
	"github.com/hvariant/cpptoml/pkg"
	"github.com/spf13/cobra"
)

type TomlParams struct {
	Find   string `json:"find"`   // qualified key to look up
	Input  string `json:"input"`  // input file path
	Output string `json:"output"` // output file path
	JSON   bool   `json:"json"`   // emit JSON instead of TOML text
}

var params *TomlParams

var tomlCmd = &cobra.Command{
	Use:   "toml",
	Short: "toml parse tools",
	Run:   tomlRun,
}

func init() {
	params = &TomlParams{}
	tomlCmd.Flags().StringVarP(&params.Find, "find", "f", "", "qualified key like a.b.c")
	tomlCmd.Flags().StringVarP(&params.Input, "input", "i", "", "input file path")
	tomlCmd.Flags().StringVarP(&params.Output, "output", "o", "", "output path")
	tomlCmd.Flags().BoolVarP(&params.JSON, "json", "j", false, "emit JSON")
}

func tomlRun(cmd *cobra.Command, args []string) {
	if len(params.Input) == 0 {
		fmt.Println("no input file path")
		return
	}
	exist, err := pkg.CheckFileExist(params.Input)
	if err != nil {
		fmt.Println("check file exist error:", err)
		return
	}
	if !exist {
		fmt.Println("input file not exist")
		return
	}

	root, err := toml.ParseFile(params.Input)
	if err != nil {
		fmt.Println("parse error:", err)
		return
	}

	var node toml.Node = root
	if len(params.Find) > 0 {
		node, err = root.GetQualified(params.Find)
		if err != nil {
			fmt.Println("find error:", err)
			return
		}
	}

	var out string
	if params.JSON {
		data, err := json.MarshalIndent(toml.ToUntyped(node), "", "  ")
		if err != nil {
			fmt.Println("encode error:", err)
			return
		}
		out = string(data)
	} else {
		out = toml.Render(node)
	}

	if len(params.Output) > 0 {
		if err := pkg.WriteToFile(params.Output, []byte(out)); err != nil {
			fmt.Println("write error:", err)
			return
		}
		return
	}
	fmt.Println(out)
}
