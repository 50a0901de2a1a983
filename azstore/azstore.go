// Copyright 2026 Harald Albrecht.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package azstore serves site assets from an Azure Blob Storage container.
package azstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/sirupsen/logrus"

	"github.com/thediveo/staticedge"
)

var (
	// ErrEmptyKey indicates a request path that maps onto no blob name.
	ErrEmptyKey = errors.New("blob name must not be empty")
	// ErrInvalidKey indicates a request path with a path traversal segment.
	ErrInvalidKey = errors.New("blob name contains invalid path segment")
)

// Store fetches assets from the blobs inside a single container. Blob names
// are the request paths without their leading "/", plus an optional prefix.
type Store struct {
	client    *azblob.Client
	container string
	prefix    string
	log       logrus.FieldLogger
}

var _ staticedge.Store = (*Store)(nil)

// New creates an asset store from the given configuration, which should have
// been finalized. It validates the connection string and creates the Azure
// client, but doesn't contact the storage account yet.
func New(cfg *Config, log logrus.FieldLogger) (*Store, error) {
	client, err := azblob.NewClientFromConnectionString(cfg.ConnectionString, clientOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return NewWithClient(client, cfg.ContainerName, cfg.Prefix, log), nil
}

// NewWithClient returns an asset store using an already configured client.
func NewWithClient(client *azblob.Client, container, prefix string, log logrus.FieldLogger) *Store {
	return &Store{
		client:    client,
		container: container,
		prefix:    prefix,
		log:       log.WithField("system", "azstore"),
	}
}

func clientOptions(cfg *Config) *azblob.ClientOptions {
	retries := cfg.Retries
	if retries == 0 {
		retries = -1 // azcore's way of saying "don't".
	}
	return &azblob.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Retry: policy.RetryOptions{MaxRetries: int32(retries)},
		},
	}
}

// Fetch downloads the blob for the specified request path. A missing blob
// gives a 404 asset, whereas all other failures are returned as errors.
func (s *Store) Fetch(ctx context.Context, path string) (*staticedge.Asset, error) {
	key, err := s.blobName(path)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.DownloadStream(ctx, s.container, key, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return &staticedge.Asset{Status: http.StatusNotFound}, nil
		}
		return nil, fmt.Errorf("download blob %s: %w", key, err)
	}
	h := http.Header{}
	if resp.ContentType != nil && *resp.ContentType != "" {
		h.Set("Content-Type", *resp.ContentType)
	}
	if resp.ContentLength != nil {
		h.Set("Content-Length", strconv.FormatInt(*resp.ContentLength, 10))
	}
	if resp.ContentEncoding != nil && *resp.ContentEncoding != "" {
		h.Set("Content-Encoding", *resp.ContentEncoding)
	}
	if resp.ETag != nil {
		h.Set("ETag", string(*resp.ETag))
	}
	if resp.LastModified != nil {
		h.Set("Last-Modified", resp.LastModified.UTC().Format(http.TimeFormat))
	}
	s.log.WithField("blob", key).Debug("downloading blob")
	return &staticedge.Asset{
		Status: http.StatusOK,
		Header: h,
		Body:   resp.Body,
	}, nil
}

// blobName maps a rooted request path onto its blob name.
func (s *Store) blobName(path string) (string, error) {
	name := strings.TrimPrefix(path, "/")
	if name == "" {
		return "", ErrEmptyKey
	}
	for _, segment := range strings.Split(name, "/") {
		if segment == ".." {
			return "", ErrInvalidKey
		}
	}
	return s.prefix + name, nil
}
