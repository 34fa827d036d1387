package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"io"
	"log"

	"github.com/golang/glog"

	"github.com/robotalks/axon/pkg/env"
	"github.com/robotalks/axon/pkg/framework"
	"github.com/robotalks/axon/pkg/sensor"
)

func init() {
	env.SetupFlags()
}

func main() {
	flag.Parse()
	defer glog.Flush()
	if err := run(env.NewConfig()); err != nil {
		glog.Errorf("stopped: %v", err)
		glog.Flush()
		log.Fatalln(err)
	}
}

func run(conf *env.Config) error {
	output := conf.NewOutput()
	if closer, ok := output.(io.Closer); ok {
		defer closer.Close()
	}
	dev, err := conf.NewAxon(output)
	if err != nil {
		return err
	}
	conn, err := conf.Dial()
	if err != nil {
		return err
	}
	defer conn.Close()
	dev.Attach(conn)

	q, err := conf.SensorQueue()
	if err != nil {
		return err
	}
	runner := framework.NewRunner().HandleSignals().Go(dev)
	if q != nil {
		defer q.Close()
		runner.Go(sensor.NewRelay(q, dev, conf.Node))
	}
	return runner.Wait()
}
