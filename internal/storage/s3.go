package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "github.com/ArthurDelaporte/Loopz-Back/internal/config"
)

var s3Client *s3.Client
var s3Bucket string
var s3Region string
var publicBase string

func InitS3(cfg *appconfig.Config) error {
	s3Bucket = cfg.Storage.Bucket
	s3Region = cfg.Storage.Region

	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(s3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Storage.AccessKey,
			cfg.Storage.SecretKey,
			"",
		)),
	)
	if err != nil {
		return fmt.Errorf("chargement config AWS: %w", err)
	}

	endpoint := cfg.Storage.Endpoint
	s3Client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		// Supabase Storage expose une API S3 en path-style
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	SetPublicBase(cfg.Storage.PublicURL)
	return nil
}

// SetPublicBase fixe le préfixe des URLs publiques, AWS par défaut
func SetPublicBase(base string) {
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", s3Bucket, s3Region)
	}
	publicBase = strings.TrimSuffix(base, "/")
}

func PublicURL(key string) string {
	return publicBase + "/" + key
}

// KeyFromURL retrouve la clé d'un objet à partir de son URL publique
func KeyFromURL(url string) string {
	if publicBase != "" && strings.HasPrefix(url, publicBase+"/") {
		return strings.TrimPrefix(url, publicBase+"/")
	}
	if parts := strings.SplitN(url, ".amazonaws.com/", 2); len(parts) == 2 {
		return parts[1]
	}
	return ""
}

func Upload(ctx context.Context, body io.Reader, key string, contentType string) (string, error) {
	if s3Client == nil {
		return "", fmt.Errorf("upload échoué: client S3 non initialisé")
	}

	_, err := s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s3Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload échoué: %w", err)
	}

	return PublicURL(key), nil
}

func Delete(ctx context.Context, key string) error {
	if s3Client == nil || key == "" {
		return nil
	}

	_, err := s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("erreur suppression S3 : %w", err)
	}
	return nil
}
