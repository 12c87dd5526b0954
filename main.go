package main

import (
	"atlas-maple2/config"
	"atlas-maple2/database"
	"atlas-maple2/item"
	inventory2 "atlas-maple2/kafka/consumer/inventory"
	session2 "atlas-maple2/kafka/consumer/session"
	"atlas-maple2/kafka/producer"
	"atlas-maple2/logger"
	"atlas-maple2/metrics"
	"atlas-maple2/service"
	"atlas-maple2/session"
	"atlas-maple2/tracing"
	"context"

	"github.com/Chronicle20/atlas-constants/channel"
	"github.com/Chronicle20/atlas-constants/world"
	"github.com/Chronicle20/atlas-kafka/consumer"
	"github.com/Chronicle20/atlas-rest/server"
	tenant "github.com/Chronicle20/atlas-tenant"
	"github.com/sirupsen/logrus"
)

const serviceName = "atlas-maple2-inventory"

type Server struct {
	baseUrl string
	prefix  string
}

func (s Server) GetBaseURL() string {
	return s.baseUrl
}

func (s Server) GetPrefix() string {
	return s.prefix
}

func GetServer() Server {
	return Server{
		baseUrl: "",
		prefix:  "/api/",
	}
}

func main() {
	l := logger.CreateLogger(serviceName)
	l.Infoln("Starting main service.")

	c, err := config.Load()
	if err != nil {
		l.WithError(err).Fatal("Unable to load configuration.")
	}
	logger.SetLevel(l, c.LogLevel)

	tdm := service.GetTeardownManager()

	tc, err := tracing.InitTracer(l)(serviceName)
	if err != nil {
		l.WithError(err).Fatal("Unable to initialize tracer.")
	}

	db := database.Connect(l, database.SetPath(c.DatabasePath), database.SetMigrations(item.Migration))

	w := producer.NewWriter(c.BootstrapServers)
	tdm.TeardownFunc(session.Teardown(l, context.Background(), db))
	tdm.TeardownFunc(func() {
		if err := w.Close(); err != nil {
			l.WithError(err).Errorf("Unable to close kafka writer.")
		}
	})
	tdm.TeardownFunc(tracing.Teardown(l)(tc))

	// Session contexts are detached from shutdown so queued notifications still deliver.
	base := context.WithoutCancel(tdm.Context())
	pp := func(l logrus.FieldLogger, ctx context.Context) *session.Processor {
		sctx := tenant.WithContext(base, tenant.MustFromContext(ctx))
		return session.NewProcessor(l, sctx, db).
			WithProducer(producer.ProviderImpl(l)(sctx)(w)).
			WithCapacity(c.InventoryCapacity).
			WithOutboundDepth(c.OutboundDepth)
	}

	cmf := consumer.GetManager().AddConsumer(l, tdm.Context(), tdm.WaitGroup())
	session2.InitConsumers(l)(cmf)(c.BootstrapServers, c.ConsumerGroupId)
	inventory2.InitConsumers(l)(cmf)(c.BootstrapServers, c.ConsumerGroupId)
	session2.InitHandlers(l)(world.Id(c.WorldId), channel.Id(c.ChannelId))(pp)(consumer.GetManager().RegisterHandler)
	inventory2.InitHandlers(l)(consumer.GetManager().RegisterHandler)

	server.New(l).
		WithContext(tdm.Context()).
		WithWaitGroup(tdm.WaitGroup()).
		SetBasePath(GetServer().GetPrefix()).
		SetPort(c.RestPort).
		AddRouteInitializer(session.InitResource(GetServer())(db)).
		AddRouteInitializer(metrics.InitResource()).
		Run()

	tdm.Wait()
	l.Infoln("Service shutdown.")
}
