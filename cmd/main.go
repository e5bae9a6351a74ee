package main

import (
	api "PlayoffPredictor"
)

func main() {
	api.Run()
}
