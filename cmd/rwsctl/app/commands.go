package app

import (
	"fmt"
	"io"
	"os"

	"github.com/RassulYunussov/rwsclient/requests"
	"github.com/spf13/cobra"
)

func NewVersionCommand(opts *GlobalOptions) *cobra.Command {
	var build, codename bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the service version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case build:
				return opts.send(cmd, requests.BuildVersion())
			case codename:
				return opts.send(cmd, requests.CodeName())
			default:
				return opts.send(cmd, requests.Version())
			}
		},
	}
	cmd.Flags().BoolVar(&build, "build", false, "show the build version")
	cmd.Flags().BoolVar(&codename, "codename", false, "show the release code name")
	cmd.MarkFlagsMutuallyExclusive("build", "codename")
	return cmd
}

func NewDiagnosticsCommand(opts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "diagnostics",
		Short: "Run the service self diagnostics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.send(cmd, requests.Diagnostics())
		},
	}
}

func NewStudiesCommand(opts *GlobalOptions) *cobra.Command {
	var metadata bool
	cmd := &cobra.Command{
		Use:   "studies",
		Short: "List studies visible to the user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if metadata {
				return opts.send(cmd, requests.MetadataStudies())
			}
			return opts.send(cmd, requests.ClinicalStudies())
		},
	}
	cmd.Flags().BoolVar(&metadata, "metadata", false, "list studies from the architect metadata")
	return cmd
}

func NewSubjectsCommand(opts *GlobalOptions) *cobra.Command {
	params := requests.StudySubjectsParams{}
	cmd := &cobra.Command{
		Use:     "subjects <project> <environment>",
		Short:   "List the subjects of a study environment",
		Example: `  rwsctl subjects Mediflex Prod --status --include inactive`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			params.ProjectName, params.EnvironmentName = args[0], args[1]
			spec, err := requests.StudySubjects(params)
			if err != nil {
				return err
			}
			return opts.send(cmd, spec)
		},
	}
	cmd.Flags().BoolVar(&params.Status, "status", false, "include subject status")
	cmd.Flags().BoolVar(&params.Links, "links", false, "include deep links")
	cmd.Flags().StringVar(&params.Include, "include", "", "inactive, deleted or inactiveAndDeleted")
	cmd.Flags().StringVar(&params.SubjectKeyType, "subject-key-type", "", "SubjectName or SubjectUUID")
	return cmd
}

func NewDatasetCommand(opts *GlobalOptions) *cobra.Command {
	params := requests.FormDataParams{}
	cmd := &cobra.Command{
		Use:     "dataset <project> <environment> <form-oid>",
		Short:   "Download the clinical view of one form",
		Example: `  rwsctl dataset Mediflex Prod DM --type raw --format xml`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			params.ProjectName, params.EnvironmentName, params.FormOID = args[0], args[1], args[2]
			spec, err := requests.FormData(params)
			if err != nil {
				return err
			}
			return opts.send(cmd, spec)
		},
	}
	cmd.Flags().StringVar(&params.DatasetType, "type", requests.DatasetTypeRegular, "regular or raw")
	cmd.Flags().StringVar(&params.Format, "format", requests.FormatCSV, "csv or xml")
	cmd.Flags().StringVar(&params.Start, "start", "", "only records changed since this ISO 8601 timestamp")
	return cmd
}

func NewMetadataCommand(opts *GlobalOptions) *cobra.Command {
	var project, view, format string
	cmd := &cobra.Command{
		Use:   "metadata",
		Short: "Download clinical view metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var spec *requests.Request
			var err error
			switch {
			case project != "":
				spec, err = requests.ProjectMetaData(project, format)
			case view != "":
				spec, err = requests.ViewMetaData(view, format)
			default:
				spec, err = requests.MetaData(format)
			}
			if err != nil {
				return err
			}
			return opts.send(cmd, spec)
		},
	}
	cmd.Flags().StringVar(&project, "project", "", "metadata of one project")
	cmd.Flags().StringVar(&view, "view", "", "metadata of one clinical view")
	cmd.Flags().StringVar(&format, "format", requests.FormatCSV, "csv or xml")
	cmd.MarkFlagsMutuallyExclusive("project", "view")
	return cmd
}

func NewPostCommand(opts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "post <odm-file>",
		Short: "Submit an ODM clinical data document, - reads stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			odm, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}
			spec, err := requests.PostData(odm)
			if err != nil {
				return err
			}
			return opts.send(cmd, spec)
		},
	}
}

func readDocument(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		return string(b), err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(b), nil
}
