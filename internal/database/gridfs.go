package repository

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// artifactMeta travels with each GridFS file so uploads can be audited
// by category.
type artifactMeta struct {
	Category string `bson:"category"`
}

// UploadArtifact stores a user upload in GridFS under its reference.
func (m *MongoDB) UploadArtifact(ctx context.Context, ref string, category string, reader io.Reader) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	bucket, err := gridfs.NewBucket(connection.Database(m.database))
	if err != nil {
		return fmt.Errorf("gridfs bucket: %w", err)
	}

	uploadOpts := options.GridFSUpload().SetMetadata(artifactMeta{Category: category})
	uploadStream, err := bucket.OpenUploadStream(ref, uploadOpts)
	if err != nil {
		return fmt.Errorf("gridfs open upload: %w", err)
	}

	if _, err := io.Copy(uploadStream, reader); err != nil {
		uploadStream.Close()
		return fmt.Errorf("gridfs copy: %w", err)
	}

	if err := uploadStream.Close(); err != nil {
		return fmt.Errorf("gridfs close upload: %w", err)
	}
	return nil
}

// gridfsReadCloser wraps a GridFS download stream and disconnects
// the MongoDB client when closed.
type gridfsReadCloser struct {
	stream     *gridfs.DownloadStream
	disconnect func()
}

func (r *gridfsReadCloser) Read(p []byte) (int, error) {
	return r.stream.Read(p)
}

func (r *gridfsReadCloser) Close() error {
	err := r.stream.Close()
	r.disconnect()
	return err
}

// DownloadArtifact retrieves an upload by its reference. The caller must
// close the returned ReadCloser to release the MongoDB connection.
func (m *MongoDB) DownloadArtifact(ctx context.Context, ref string) (io.ReadCloser, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}

	bucket, err := gridfs.NewBucket(connection.Database(m.database))
	if err != nil {
		m.disconnect(connection)
		return nil, fmt.Errorf("gridfs bucket: %w", err)
	}

	stream, err := bucket.OpenDownloadStreamByName(ref)
	if err != nil {
		m.disconnect(connection)
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("gridfs open download: %w", err)
	}

	return &gridfsReadCloser{
		stream:     stream,
		disconnect: func() { m.disconnect(connection) },
	}, nil
}

// DeleteArtifact removes an upload by its reference. Missing files are
// not an error.
func (m *MongoDB) DeleteArtifact(ctx context.Context, ref string) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	bucket, err := gridfs.NewBucket(connection.Database(m.database))
	if err != nil {
		return fmt.Errorf("gridfs bucket: %w", err)
	}

	cursor, err := bucket.Find(bson.D{{Key: "filename", Value: ref}})
	if err != nil {
		return fmt.Errorf("gridfs find: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var file struct {
			ID interface{} `bson:"_id"`
		}
		if err := cursor.Decode(&file); err != nil {
			return fmt.Errorf("gridfs decode: %w", err)
		}
		if err := bucket.Delete(file.ID); err != nil {
			return fmt.Errorf("gridfs delete: %w", err)
		}
	}
	return nil
}
