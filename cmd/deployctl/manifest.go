package main

import (
	"fmt"

	"gopkg.in/yaml.v3"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	sigsyaml "sigs.k8s.io/yaml"
)

// kindCluster is the kind cluster configuration for a local registry
// and ingress-ready control plane.
type kindCluster struct {
	Kind       string     `yaml:"kind"`
	APIVersion string     `yaml:"apiVersion"`
	Nodes      []kindNode `yaml:"nodes"`
	// ContainerdConfigPatches wires the local image registry mirror.
	ContainerdConfigPatches []string `yaml:"containerdConfigPatches"`
}

type kindNode struct {
	Role                 string            `yaml:"role"`
	KubeadmConfigPatches []string          `yaml:"kubeadmConfigPatches"`
	ExtraPortMappings    []kindPortMapping `yaml:"extraPortMappings"`
}

type kindPortMapping struct {
	ContainerPort int    `yaml:"containerPort"`
	HostPort      int    `yaml:"hostPort"`
	Protocol      string `yaml:"protocol"`
}

// renderKindConfig produces the cluster config used by setup.
func renderKindConfig() ([]byte, error) {
	cfg := kindCluster{
		Kind:       "Cluster",
		APIVersion: "kind.x-k8s.io/v1alpha4",
		Nodes: []kindNode{
			{
				Role: "control-plane",
				KubeadmConfigPatches: []string{
					"kind: InitConfiguration\nnodeRegistration:\n  kubeletExtraArgs:\n    node-labels: \"ingress-ready=true\"\n",
				},
				ExtraPortMappings: []kindPortMapping{
					{ContainerPort: 30950, HostPort: 30950, Protocol: "TCP"},
					{ContainerPort: 80, HostPort: 80, Protocol: "TCP"},
					{ContainerPort: 443, HostPort: 443, Protocol: "TCP"},
				},
			},
		},
		ContainerdConfigPatches: []string{
			"[plugins.\"io.containerd.grpc.v1.cri\".registry.mirrors.\"localhost:5001\"]\n  endpoint = [\"http://registry:5000\"]",
		},
	}
	return yaml.Marshal(cfg)
}

// httpTrigger is the Cosmonic Control HTTPTrigger custom resource.
type httpTrigger struct {
	APIVersion string            `json:"apiVersion"`
	Kind       string            `json:"kind"`
	Metadata   metav1.ObjectMeta `json:"metadata"`
	Spec       httpTriggerSpec   `json:"spec"`
}

type httpTriggerSpec struct {
	Image    string `json:"image"`
	Replicas int32  `json:"replicas"`
}

// renderHTTPTrigger produces the HTTPTrigger manifest for the app.
func renderHTTPTrigger(appName, namespace, image string) ([]byte, error) {
	trigger := httpTrigger{
		APIVersion: "control.cosmonic.io/v1alpha1",
		Kind:       "HTTPTrigger",
		Metadata: metav1.ObjectMeta{
			Name:      appName,
			Namespace: namespace,
			Labels:    map[string]string{"app": appName},
		},
		Spec: httpTriggerSpec{
			Image:    image,
			Replicas: 1,
		},
	}
	return sigsyaml.Marshal(trigger)
}

// renderDeployment produces a plain Deployment plus Service manifest
// for clusters without Cosmonic Control.
func renderDeployment(appName, namespace, image string) ([]byte, error) {
	replicas := int32(1)
	labels := map[string]string{"app": appName}

	deployment := appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "apps/v1",
			Kind:       "Deployment",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      appName,
			Namespace: namespace,
			Labels:    labels,
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: &replicas,
			Selector: &metav1.LabelSelector{MatchLabels: labels},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: labels},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{
						{
							Name:  appName,
							Image: image,
							Ports: []corev1.ContainerPort{
								{ContainerPort: 8080, Protocol: corev1.ProtocolTCP},
							},
						},
					},
				},
			},
		},
	}

	service := corev1.Service{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Service",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      appName,
			Namespace: namespace,
			Labels:    labels,
		},
		Spec: corev1.ServiceSpec{
			Selector: labels,
			Ports: []corev1.ServicePort{
				{Port: 80, TargetPort: intstr.FromInt32(8080), Protocol: corev1.ProtocolTCP},
			},
		},
	}

	deploymentYAML, err := sigsyaml.Marshal(deployment)
	if err != nil {
		return nil, fmt.Errorf("marshal deployment: %w", err)
	}
	serviceYAML, err := sigsyaml.Marshal(service)
	if err != nil {
		return nil, fmt.Errorf("marshal service: %w", err)
	}

	manifest := append(deploymentYAML, []byte("---\n")...)
	return append(manifest, serviceYAML...), nil
}

// renderNamespace produces a Namespace manifest for kubectl apply.
func renderNamespace(name string) ([]byte, error) {
	namespace := corev1.Namespace{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Namespace",
		},
		ObjectMeta: metav1.ObjectMeta{Name: name},
	}
	return sigsyaml.Marshal(namespace)
}
