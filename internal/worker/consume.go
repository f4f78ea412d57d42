package worker

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

const jobsQueue = "optimizations"

// Consumer feeds jobs from RabbitMQ to a Processor.
type Consumer struct {
	url       string
	processor *Processor
}

func NewConsumer(url string, processor *Processor) *Consumer {
	return &Consumer{url: url, processor: processor}
}

// StartWorkerPool blocks until ctx is done and every worker has returned.
func (c *Consumer) StartWorkerPool(ctx context.Context, numWorkers int) {
	var wg sync.WaitGroup
	wg.Add(numWorkers)

	for i := range numWorkers {
		log.Println("worker id ", i+1, "started")
		go c.worker(ctx, i+1, &wg)
	}
	wg.Wait()
}

func (c *Consumer) worker(ctx context.Context, id int, wg *sync.WaitGroup) {
	defer wg.Done()

	conn, err := amqp.Dial(c.url)
	if err != nil {
		log.Printf("[Worker %d] error dialling rabbitmq: %v", id, err)
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("[Worker %d] error connecting to rabbitmq channel: %v", id, err)
		return
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		jobsQueue, // queue name
		true,      // durable (survives broker restarts)
		false,     // auto-delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		log.Printf("[Worker %d] failed to declare queue: %v", id, err)
		return
	}
	// one job at a time per worker
	if err := ch.Qos(1, 0, false); err != nil {
		log.Printf("[Worker %d] failed to set qos: %v", id, err)
		return
	}

	msgs, err := ch.Consume(
		jobsQueue, // queue name
		"",        // consumer tag
		false,     // auto-ack
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		log.Printf("[Worker %d] error consuming rabbitmq message: %v", id, err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				log.Printf("[Worker %d] delivery channel closed", id)
				return
			}
			c.deliver(ctx, id, msg)
		}
	}
}

// deliver handles one message and settles it. A job cut short by shutdown is
// requeued so another worker can pick it up.
func (c *Consumer) deliver(ctx context.Context, id int, msg amqp.Delivery) {
	c.handle(ctx, id, msg.Body)

	if ctx.Err() != nil {
		log.Printf("[Worker %d] shutting down, requeueing message", id)
		if err := msg.Nack(false, true); err != nil {
			log.Printf("[Worker %d] failed to nack message: %v", id, err)
		}
		return
	}
	if err := msg.Ack(false); err != nil {
		log.Printf("[Worker %d] failed to ack message: %v", id, err)
	}
}

func (c *Consumer) handle(ctx context.Context, id int, body []byte) {
	var job Job
	if err := json.Unmarshal(body, &job); err != nil {
		log.Printf("[Worker %d] error unmarshalling message body. err: %v", id, err)
		return
	}
	if job.SessionID == uuid.Nil {
		log.Printf("[Worker %d] message without session_id skipped", id)
		return
	}

	log.Printf("[Worker %d] processing session. session_id: %s", id, job.SessionID)
	if err := c.processor.Process(ctx, job); err != nil {
		log.Printf("[Worker %d] error optimizing session_id: %v. err: %v", id, job.SessionID, err)
	}
}
