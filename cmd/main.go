package main

import "github.com/adanyl0v/agua-vida/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.InitStore()

	app.MustListenAndServeHTTP()
}
