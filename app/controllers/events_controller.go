package controllers

import (
	"bufio"
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/valyala/fasthttp"

	"github.com/appetyte/appetyte/internal/pkg/realtime"
	"github.com/appetyte/appetyte/internal/pkg/usercontext"
)

// heartbeatInterval keeps idle SSE connections from being reaped by proxies.
const heartbeatInterval = 30 * time.Second

// HandleEvents streams row-change events to the authenticated actor over
// Server-Sent Events. Providers get their tenant channel, customers their
// own. The stream ends when the client disconnects.
func HandleEvents(c *fiber.Ctx) error {
	var subscribe func(ctx context.Context) *redis.PubSub
	if usercontext.IsProvider(c) {
		providerID := usercontext.GetProviderID(c)
		subscribe = func(ctx context.Context) *redis.PubSub {
			return realtime.SubscribeProvider(ctx, providerID)
		}
	} else {
		customerID := usercontext.GetActorID(c)
		subscribe = func(ctx context.Context) *redis.PubSub {
			return realtime.SubscribeCustomer(ctx, customerID)
		}
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sub := subscribe(ctx)
		defer sub.Close()

		heartbeat := time.NewTicker(heartbeatInterval)
		defer heartbeat.Stop()

		ch := sub.Channel()
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				fmt.Fprintf(w, "event: change\ndata: %s\n\n", msg.Payload)
			case <-heartbeat.C:
				fmt.Fprint(w, ": ping\n\n")
			}
			if err := w.Flush(); err != nil {
				// client went away
				return
			}
		}
	}))

	return nil
}
