/*
 * Copyright 2026 Convoyant, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// cxdash is a one-shot CLI over the normalized platform client. Each
// subcommand issues the corresponding dashboard query and prints the
// normalized records as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/convoyant/cxdash/pkg/cloudcx"
	"github.com/convoyant/cxdash/pkg/config"
	"github.com/convoyant/cxdash/pkg/logger"
)

type appConfig struct {
	CloudCX cloudcx.Config `json:"cloudcx"`
	Logging logger.Config  `json:"logging"`
}

// Validate implements config.Validator.
func (c *appConfig) Validate() error {
	return c.CloudCX.Validate()
}

const usage = `usage: cxdash [-config path] <command> [args]

commands:
  users                  list users with presence, division and extension
  divisions              list authorization divisions
  skills                 list routing skills
  user-skills <userID>   list one user's skill assignments
  queues                 list queues with live observation gauges
  edges                  list telephony edges with latest metrics
  tables                 list data tables with inferred primary keys
  rows <tableID>         list one data table's rows
  audit [interval]       query the audit log (default: last 24h)
  conversations [interval]
                         query conversation details (default: last 24h)
`

func main() {
	configPath := flag.String("config", "/etc/cxdash/cxdash.json", "Path to config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	cfgLoader := config.NewConfig()

	var cfg appConfig

	if err := cfgLoader.LoadAndValidate(ctx, *configPath, &cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	client, err := cloudcx.NewClient(&cfg.CloudCX, nil, zl)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	result, err := run(ctx, client, args)
	if err != nil {
		log.Fatalf("Command %q failed: %v", args[0], err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}

	fmt.Println(string(out))
}

func run(ctx context.Context, client *cloudcx.Client, args []string) (interface{}, error) {
	command := args[0]
	args = args[1:]

	switch command {
	case "users":
		return client.ListUsers(ctx)
	case "divisions":
		return client.ListDivisions(ctx)
	case "skills":
		return client.ListSkills(ctx)
	case "user-skills":
		userID, err := oneArg(command, args)
		if err != nil {
			return nil, err
		}

		return client.GetUserSkills(ctx, userID)
	case "queues":
		return client.ListQueues(ctx)
	case "edges":
		return client.ListEdges(ctx)
	case "tables":
		return client.ListTables(ctx)
	case "rows":
		tableID, err := oneArg(command, args)
		if err != nil {
			return nil, err
		}

		return client.ListTableRows(ctx, tableID)
	case "audit":
		return client.QueryAuditLog(ctx, intervalArg(args))
	case "conversations":
		return client.QueryConversations(ctx, intervalArg(args))
	default:
		return nil, fmt.Errorf("unknown command %q", command)
	}
}

func oneArg(command string, args []string) (string, error) {
	if len(args) != 1 || args[0] == "" {
		return "", fmt.Errorf("command %q requires exactly one argument", command)
	}

	return args[0], nil
}

// intervalArg returns the explicit interval argument or the last 24 hours.
func intervalArg(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}

	now := time.Now()

	return cloudcx.Interval(now.Add(-24*time.Hour), now)
}
