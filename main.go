package main

import "xrplbalance/api"

func main() {
	api.Main()
}
