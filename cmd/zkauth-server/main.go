package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/sauerbraten/jsonfile"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/zkpass/zkauth"
	"github.com/zkpass/zkauth/server"
	"github.com/zkpass/zkauth/zkpauthpb"
)

type Config struct {
	Host   string `json:"host"`
	Port   int    `json:"port"`
	Flavor string `json:"flavor"`
	Curve  string `json:"curve"`
}

var (
	host       = flag.String("host", "[::1]", "address to listen on")
	port       = flag.Int("port", 50051, "port to listen on")
	flavor     = flag.String("flavor", string(zkauth.FlavorDiscreteLog), "protocol flavor: discrete_log or elliptic_curve")
	curve      = flag.String("curve", string(zkauth.CurvePallas), "elliptic curve: pallas or vesta (elliptic_curve flavor only)")
	configPath = flag.String("config", "", "optional JSON config file; explicitly set flags take precedence")
)

func main() {
	flag.Parse()
	log := zkauth.Logger

	conf := Config{Host: *host, Port: *port, Flavor: *flavor, Curve: *curve}
	if *configPath != "" {
		if err := jsonfile.ParseFile(*configPath, &conf); err != nil {
			log.WithError(err).Fatal("failed to read config file")
		}
		// Flags given on the command line win over the config file.
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "host":
				conf.Host = *host
			case "port":
				conf.Port = *port
			case "flavor":
				conf.Flavor = *flavor
			case "curve":
				conf.Curve = *curve
			}
		})
	}

	fl, err := zkauth.ParseFlavor(conf.Flavor)
	if err != nil {
		log.WithError(err).Fatal("invalid flavor")
	}
	cn, err := zkauth.ParseCurveName(conf.Curve)
	if err != nil {
		log.WithError(err).Fatal("invalid curve")
	}

	addr := fmt.Sprintf("%s:%d", conf.Host, conf.Port)
	if _, err = net.ResolveTCPAddr("tcp", addr); err != nil {
		log.WithError(err).Fatalf("failed to parse server address %s", addr)
	}

	fields := map[string]interface{}{"addr": addr, "flavor": fl}
	if fl == zkauth.FlavorEllipticCurve {
		fields["curve"] = cn
	}
	log.WithFields(fields).Info("starting server")

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.WithError(err).Fatal("failed to listen")
	}

	grpcServer := grpc.NewServer()
	zkpauthpb.RegisterAuthServer(grpcServer, server.NewAuthServer(fl, cn))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return grpcServer.Serve(lis)
	})
	g.Go(func() error {
		<-ctx.Done()
		grpcServer.GracefulStop()
		return nil
	})
	if err := g.Wait(); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
