package main

import (
	"fmt"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/spf13/cobra"

	"github.com/saulo-duarte/learnstyle-lambda/internal/config"
	"github.com/saulo-duarte/learnstyle-lambda/internal/container"
)

var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Run as an AWS Lambda behind an HTTP API gateway",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		c, err := container.New(ctx, config.Load())
		if err != nil {
			return fmt.Errorf("build container: %w", err)
		}

		adapter := httpadapter.NewV2(c.Router())
		lambda.Start(adapter.ProxyWithContext)
		return nil
	},
}
