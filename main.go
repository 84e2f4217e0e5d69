package main

import (
	"fmt"
	"log"
	"os"

	"github.com/hamoci/rhythme/internal/config"
	"github.com/hamoci/rhythme/internal/logger"
	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:]); nil != err {
		log.Fatalln(err)
	}
}

func run(args []string) error {
	c, err := config.Parse(args)
	if nil != err {
		return err
	}

	l, err := logger.New(logger.Config{Level: c.LogLevel, OutputPath: c.LogFile})
	if nil != err {
		return fmt.Errorf("unable to create logger: %w", err)
	}
	defer l.Sync()
	l.Info("starting", zap.String("version", config.Version), zap.String("directory", c.Directory))

	p := &Program{}
	defer p.Close()
	if err := p.Init(c, l); nil != err {
		p.Deinit()
		return err
	}
	p.Run()
	p.Deinit()

	summary, err := p.Result()
	fmt.Println(summary)
	if nil != err {
		return fmt.Errorf("unable to save result: %w", err)
	}
	return nil
}
