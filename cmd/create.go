package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/45air/airlocal/entity"
	"github.com/45air/airlocal/errors"
	"github.com/45air/airlocal/hostname"
	"github.com/45air/airlocal/ui"
)

func always(v string) func(ui.Answers) string {
	return func(ui.Answers) string { return v }
}

func answered(name string) func(ui.Answers) bool {
	return func(a ui.Answers) bool { return a.Bool(name) }
}

func createQuestions() []ui.Question {
	runtimes := make([]ui.Choice, len(entity.RuntimeVersions))
	for i, v := range entity.RuntimeVersions {
		runtimes[i] = ui.Choice{Label: v, Value: v}
	}
	installing := answered("wordpress")

	return []ui.Question{
		{
			Name:     "hostname",
			Kind:     ui.Input,
			Message:  "What is the primary hostname for your site? (Ex: docker.test)",
			Validate: hostname.ValidateNotEmpty,
			Filter:   hostname.Normalize,
		},
		{
			Name:    "addMoreHosts",
			Kind:    ui.Confirm,
			Message: "Are there additional domains the site should respond to?",
			Default: always("false"),
		},
		{
			Name:    "extraHosts",
			Kind:    ui.Input,
			Message: "Enter additional hostnames separated by spaces (Ex: docker1.test docker2.test)",
			When:    answered("addMoreHosts"),
			Filter: func(v string) string {
				return strings.Join(hostname.Split(v), " ")
			},
		},
		{
			Name:    "mediaProxy",
			Kind:    ui.Confirm,
			Message: "Do you want to set a proxy for media assets? (i.e. Serving /uploads/ directory assets from a production site)",
			Default: always("false"),
		},
		{
			Name:    "proxy",
			Kind:    ui.Input,
			Message: "Proxy URL",
			When:    answered("mediaProxy"),
			Default: func(a ui.Answers) string {
				return hostname.DefaultProxy(a.String("hostname"))
			},
			Validate: hostname.ValidateNotEmpty,
			Filter:   hostname.NormalizeProxyURL,
		},
		{
			Name:    "phpVersion",
			Kind:    ui.Select,
			Message: "What version of PHP would you like to use?",
			Choices: runtimes,
			Default: always(entity.DefaultRuntimeVersion),
		},
		{
			Name:    "elasticsearch",
			Kind:    ui.Confirm,
			Message: "Do you need Elasticsearch",
			Default: always("true"),
		},
		{
			Name:    "wordpress",
			Kind:    ui.Confirm,
			Message: "Do you want to install WordPress?",
			Default: always("true"),
		},
		{
			Name:    "wordpressType",
			Kind:    ui.Select,
			Message: "Select a WordPress installation type:",
			When:    installing,
			Choices: []ui.Choice{
				{Label: "Single Site", Value: string(entity.VariantSingle)},
				{Label: "Subdirectory Multisite", Value: string(entity.VariantSubdirectory)},
				{Label: "Subdomain Multisite", Value: string(entity.VariantSubdomain)},
				{Label: "Core Development Version", Value: string(entity.VariantDevelopment)},
			},
			Default: always(string(entity.VariantSingle)),
		},
		{
			Name:    "emptyContent",
			Kind:    ui.Confirm,
			Message: "Do you want to remove the default content?",
			When:    installing,
			Default: always("true"),
		},
		{
			Name:    "title",
			Kind:    ui.Input,
			Message: "Site Name",
			When:    installing,
			Default: func(a ui.Answers) string {
				return a.String("hostname")
			},
			Validate: hostname.ValidateNotEmpty,
		},
		{
			Name:     "username",
			Kind:     ui.Input,
			Message:  "Admin Username",
			When:     installing,
			Default:  always("admin"),
			Validate: hostname.ValidateNotEmpty,
		},
		{
			Name:     "password",
			Kind:     ui.Input,
			Message:  "Admin Password",
			When:     installing,
			Default:  always("password"),
			Validate: hostname.ValidateNotEmpty,
		},
		{
			Name:     "email",
			Kind:     ui.Input,
			Message:  "Admin Email",
			When:     installing,
			Default:  always("admin@example.com"),
			Validate: hostname.ValidateNotEmpty,
		},
	}
}

func specFromAnswers(a ui.Answers) *entity.EnvironmentSpec {
	spec := &entity.EnvironmentSpec{
		PrimaryHost:    a.String("hostname"),
		ExtraHosts:     a.Fields("extraHosts"),
		RuntimeVersion: a.String("phpVersion"),
		SearchEnabled:  a.Bool("elasticsearch"),
	}
	if a.Bool("mediaProxy") {
		spec.MediaProxyURL = a.String("proxy")
	}
	if a.Bool("wordpress") {
		spec.ApplicationEnabled = true
		spec.ApplicationVariant = entity.Variant(a.String("wordpressType"))
		spec.WipeDefaultContent = a.Bool("emptyContent")
		spec.Admin = &entity.AdminCredentials{
			Title:    a.String("title"),
			Username: a.String("username"),
			Password: a.String("password"),
			Email:    a.String("email"),
		}
	}
	return spec
}

func (h *Handler) Create(ctx context.Context, req *entity.CommandRequest) error {
	if _, ok := h.asker.(ui.TerminalAsker); ok && !ui.IsInteractive() {
		return errors.NotInteractive
	}
	if err := h.ctrl.CheckDocker(ctx); err != nil {
		return err
	}

	answers, err := ui.Ask(h.asker, createQuestions())
	if err != nil {
		return err
	}

	result, err := h.ctrl.Provision(ctx, specFromAnswers(answers))
	if err != nil {
		return err
	}

	fmt.Println(ui.GreenText("Successfully Created Site!"))
	for _, note := range result.Notes {
		fmt.Println(ui.YellowText(note))
	}
	if len(result.Warnings) > 0 {
		fmt.Printf("Finished with %d warning(s)\n", len(result.Warnings))
	}
	return nil
}
