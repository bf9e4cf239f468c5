// Package engagement holds the identifiers shared by the API and its
// clients for likes, comments and the engagement stream.
package engagement

import (
	"errors"
	"fmt"
	"strings"
)

// TargetType names the kind of content that can be liked or commented on.
type TargetType string

const (
	TargetProject TargetType = "project"
	TargetPost    TargetType = "post"
)

// ErrUnknownTarget is returned by ParseTargetType for anything but a
// project or post.
var ErrUnknownTarget = errors.New("target type must be project or post")

// ParseTargetType normalises a target type from user input.
func ParseTargetType(value string) (TargetType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "project", "projects":
		return TargetProject, nil
	case "post", "posts", "blog":
		return TargetPost, nil
	}
	return "", ErrUnknownTarget
}

// Topic is the engagement stream key for a target.
func Topic(t TargetType, id string) string {
	return fmt.Sprintf("%s:%s", t, id)
}
