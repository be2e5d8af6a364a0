package queue

import (
	"context"
	"fmt"

	"github.com/pixstudio/photo-studio/internal/models"
	"github.com/pixstudio/photo-studio/internal/services/genai"
	"github.com/pixstudio/photo-studio/pkg/utils"
)

const maxSourceSize = 20 << 20 // 20MB

// processJob runs a single edit job: fetch the source, call the model,
// store the result. Returns the public URL of the stored result.
func (q *QueueService) processJob(ctx context.Context, job *models.EditJob) (string, error) {
	src, err := q.fetchSource(ctx, job)
	if err != nil {
		return "", fmt.Errorf("failed to fetch source image: %w", err)
	}

	var edited *genai.EditedImage
	switch job.Kind {
	case models.JobKindGenerate:
		edited, err = q.generator.Generate(ctx, src, job.Prompt)
	case models.JobKindEnhance:
		edited, err = q.generator.Enhance(ctx, src)
	default:
		return "", fmt.Errorf("unknown job kind %q", job.Kind)
	}
	if err != nil {
		return "", err
	}

	filename := utils.GenerateFilename(job.ID, utils.ExtensionForMIME(edited.MIME))
	_, resultURL, err := q.storage.UploadResult(ctx, edited.Data, filename)
	if err != nil {
		return "", fmt.Errorf("failed to store result: %w", err)
	}

	return resultURL, nil
}

func (q *QueueService) fetchSource(ctx context.Context, job *models.EditJob) (genai.SourceImage, error) {
	if job.SourceKey != "" {
		data, err := q.storage.Download(ctx, job.SourceKey)
		if err != nil {
			return genai.SourceImage{}, err
		}
		mime := job.SourceMIME
		if mime == "" {
			mime = utils.DetectImageType(data)
		}
		return genai.SourceImage{Data: data, MIME: mime}, nil
	}

	data, mime, err := utils.DownloadImage(ctx, job.SourceURL, maxSourceSize)
	if err != nil {
		return genai.SourceImage{}, err
	}
	return genai.SourceImage{Data: data, MIME: mime}, nil
}
