package main

import (
	"context"
	"flag"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/zkpass/zkauth"
	"github.com/zkpass/zkauth/client"
	"github.com/zkpass/zkauth/zkpauthpb"
)

var (
	host         = flag.String("host", "[::1]", "server address")
	port         = flag.Int("port", 50051, "server port")
	flavor       = flag.String("flavor", string(zkauth.FlavorDiscreteLog), "protocol flavor: discrete_log or elliptic_curve")
	curve        = flag.String("curve", string(zkauth.CurvePallas), "elliptic curve: pallas or vesta (elliptic_curve flavor only)")
	user         = flag.String("user", "peggy", "username to authenticate as")
	secret       = flag.String("secret", "", "password hashed into the secret; omit to generate a random one")
	keystorePath = flag.String("keystore", "", "optional file persisting a generated secret between runs")
)

func main() {
	flag.Parse()
	log := zkauth.Logger

	fl, err := zkauth.ParseFlavor(*flavor)
	if err != nil {
		log.WithError(err).Fatal("invalid flavor")
	}
	cn, err := zkauth.ParseCurveName(*curve)
	if err != nil {
		log.WithError(err).Fatal("invalid curve")
	}

	addr := fmt.Sprintf("%s:%d", *host, *port)
	fields := map[string]interface{}{"addr": addr, "flavor": fl, "user": *user}
	if fl == zkauth.FlavorEllipticCurve {
		fields["curve"] = cn
	}
	log.WithFields(fields).Info("starting client")

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.WithError(err).Fatal("failed to connect")
	}
	defer conn.Close()
	rpc := zkpauthpb.NewAuthClient(conn)

	ctx := context.Background()
	switch fl {
	case zkauth.FlavorEllipticCurve:
		err = run(ctx, zkauth.NewEllipticCurve(zkauth.CurveByName(cn)), rpc, fl, cn)
	default:
		err = run(ctx, zkauth.NewDiscreteLog(zkauth.DiscreteLogParams()), rpc, fl, cn)
	}
	if err != nil {
		log.WithError(err).Fatal("authentication failed")
	}
}

// run resolves the secret and drives the handshake with a fully-typed
// realization.
func run[E, S any](ctx context.Context, proto zkauth.Protocol[E, S], rpc zkpauthpb.AuthClient, fl zkauth.Flavor, cn zkauth.CurveName) error {
	x, err := resolveSecret(proto, fl, cn)
	if err != nil {
		return err
	}
	sessionID, err := client.NewDriver(proto, rpc).Run(ctx, *user, x)
	if err != nil {
		return err
	}
	fmt.Println("session id:", sessionID)
	return nil
}

// resolveSecret prefers an explicit --secret, then a previously saved
// keystore entry, and finally draws a fresh random secret (persisting it
// when a keystore path is set).
func resolveSecret[E, S any](proto zkauth.Protocol[E, S], fl zkauth.Flavor, cn zkauth.CurveName) (S, error) {
	var zero S
	if *secret != "" {
		return client.SecretFromPassword(proto, *secret)
	}
	if *keystorePath != "" {
		x, ok, err := client.LoadSecret(*keystorePath, proto, fl, cn)
		if err != nil {
			return zero, err
		}
		if ok {
			return x, nil
		}
	}
	x, err := proto.Scalars().Random()
	if err != nil {
		return zero, err
	}
	if *keystorePath != "" {
		if err := client.SaveSecret(*keystorePath, proto, fl, cn, x); err != nil {
			return zero, err
		}
	}
	return x, nil
}
