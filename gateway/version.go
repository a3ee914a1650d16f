package gateway

import (
	"context"

	"github.com/45air/airlocal/constants"
	"github.com/google/go-github/github"
)

func (g *Gateway) GetLatestVersion(ctx context.Context) (string, error) {
	client := github.NewClient(nil)
	rep, _, err := client.Repositories.GetLatestRelease(ctx, constants.ReleaseOwner, constants.ReleaseRepo)
	if err != nil {
		return "", err
	}
	return rep.GetTagName(), nil
}
