/*
Package lifeassist is the flow layer of a smart life assistant: a registry of schema-guarded prompts ("flows") that are rendered, sent to a reasoning service and only returned to callers once the reply matches the declared output shape.

# Concept

A flow pairs an input schema, a prompt template and an output schema. Invoking a flow validates the input, renders the template, asks the reasoning service for JSON and validates the reply. Callers receive either a validated output or a typed failure (unknown_flow, invalid_input, generation_failed, invalid_output); never a partial result.

# Key Features

  - Schema Guarded: inputs and outputs are validated and normalized, with per-field violations.
  - Pluggable Reasoning: Gemini and OpenAI-compatible chat completion backends.
  - Declarative Flows: built-in assistant flows plus Markdown flow documents loaded from a directory.
  - Personalization: user profiles stored in memory, files, Redis or PostgreSQL, optionally encrypted.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/MahidharReddy003/aislingshot-sub000"
		"github.com/MahidharReddy003/aislingshot-sub000/pkg/adapters/gemini"
	)

	func main() {
		ctx := context.Background()
		reasoner, err := gemini.New(ctx, gemini.Config{APIKey: "..."})
		if err != nil {
			log.Fatal(err)
		}

		app, err := lifeassist.New(ctx, lifeassist.WithReasoner(reasoner))
		if err != nil {
			log.Fatal(err)
		}

		reply, err := app.Assistant().Chat(ctx, "", "What should I cook tonight?")
		if err != nil {
			log.Fatal(err)
		}
		log.Println(reply.Response)
	}
*/
package lifeassist
